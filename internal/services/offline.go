package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

type remoteBox struct {
	offline bool
	remote  ports.Remote
}

// SwitchableRemote routes every remote call to either the real backend or the
// no-op offline adapter. Callers hold it for the process lifetime.
type SwitchableRemote struct {
	current atomic.Pointer[remoteBox]
	offline ports.Remote
	online  ports.Remote
}

var _ ports.Remote = (*SwitchableRemote)(nil)

// NewSwitchableRemote starts offline when online is nil or startOffline is set
func NewSwitchableRemote(online, offline ports.Remote, startOffline bool) *SwitchableRemote {
	s := &SwitchableRemote{offline: offline, online: online}
	s.current.Store(&remoteBox{offline: true, remote: offline})
	if online != nil && !startOffline {
		s.current.Store(&remoteBox{remote: online})
	}
	return s
}

// Use swaps the active adapter
func (s *SwitchableRemote) Use(offline bool) error {
	if offline {
		s.current.Store(&remoteBox{offline: true, remote: s.offline})
		return nil
	}
	if s.online == nil {
		return fmt.Errorf("%w: no database configured", domain.ErrOffline)
	}
	s.current.Store(&remoteBox{remote: s.online})
	return nil
}

// Current returns the active adapter
func (s *SwitchableRemote) Current() ports.Remote {
	return s.current.Load().remote
}

// IsOffline reports whether the no-op adapter is active
func (s *SwitchableRemote) IsOffline() bool {
	return s.current.Load().offline
}

func (s *SwitchableRemote) DeleteClient(ctx context.Context, ownerID, id string) error {
	return s.Current().DeleteClient(ctx, ownerID, id)
}

func (s *SwitchableRemote) FetchClient(ctx context.Context, ownerID, id string) (*domain.RemoteClient, error) {
	return s.Current().FetchClient(ctx, ownerID, id)
}

func (s *SwitchableRemote) FetchClients(ctx context.Context, ownerID string) ([]domain.RemoteClient, error) {
	return s.Current().FetchClients(ctx, ownerID)
}

func (s *SwitchableRemote) FetchFingerprint(ctx context.Context, ownerID, id string) (*domain.Fingerprint, error) {
	return s.Current().FetchFingerprint(ctx, ownerID, id)
}

func (s *SwitchableRemote) UpsertClient(ctx context.Context, client domain.RemoteClient) error {
	return s.Current().UpsertClient(ctx, client)
}

func (s *SwitchableRemote) Subscribe(ctx context.Context, ownerID string, handler func(domain.ChangeEvent)) error {
	return s.Current().Subscribe(ctx, ownerID, handler)
}

// OfflineController is the single user-controlled switch between online and
// offline operation. Transient network errors never flip it.
type OfflineController struct {
	auth       *AuthService
	mu         sync.Mutex
	persist    func(offline bool) error
	reconciler *Reconciler
	remote     *SwitchableRemote
}

// NewOfflineController creates the controller. persist records the flag in settings.
func NewOfflineController(remote *SwitchableRemote, reconciler *Reconciler, auth *AuthService, persist func(offline bool) error) *OfflineController {
	return &OfflineController{
		auth:       auth,
		persist:    persist,
		reconciler: reconciler,
		remote:     remote,
	}
}

// IsOffline reports the current mode
func (c *OfflineController) IsOffline() bool {
	return c.remote.IsOffline()
}

// EnableOffline stops syncing and routes every remote call to the no-op adapter
func (c *OfflineController) EnableOffline(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reconciler.Stop()
	if err := c.remote.Use(true); err != nil {
		return err
	}
	if err := c.persist(true); err != nil {
		return fmt.Errorf("failed to save offline flag: %w", err)
	}
	logging.Logger.Info("Offline mode enabled")
	return nil
}

// GoOnline restores the real backend. It requires a session the backend still
// accepts. When startSync is set the reconciler is restarted under ctx.
func (c *OfflineController) GoOnline(ctx context.Context, startSync bool) (*domain.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.remote.Use(false); err != nil {
		return nil, err
	}
	session, err := c.auth.Current(ctx)
	if err != nil {
		_ = c.remote.Use(true)
		return nil, err
	}
	if err := c.persist(false); err != nil {
		return nil, fmt.Errorf("failed to save offline flag: %w", err)
	}
	if startSync {
		if err := c.reconciler.Start(ctx, session.UserID); err != nil {
			return nil, err
		}
	}
	logging.Logger.Info("Online mode enabled", "user", session.UserID)
	return session, nil
}
