package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// SyncEvent tells renderers that a remote change was applied locally.
// ResetEditors is set when the change concerns the client on screen.
type SyncEvent struct {
	ClientID     string
	Deleted      bool
	ResetEditors bool
}

// SyncReport summarizes a one-shot pull
type SyncReport struct {
	Pulled int
	Pushed int
}

// ReconcilerConfig holds the sync timings
type ReconcilerConfig struct {
	PollInterval     time.Duration
	ReconnectBackoff time.Duration
	SelfSaveWindow   time.Duration
	TypingCooldown   time.Duration
}

// Reconciler keeps local clients in step with the remote store through two
// channels: pushed row changes and a fingerprint poll of the viewed client.
type Reconciler struct {
	cancel    context.CancelFunc
	cfg       ReconcilerConfig
	clients   *ClientService
	done      chan struct{}
	lastFP    *domain.Fingerprint
	lastID    string
	listeners []func(SyncEvent)
	mu        sync.Mutex
	pollMu    sync.Mutex
	remote    ports.Remote
	stamp     *SaveStamp
	typing    *SaveStamp
	viewed    func() string
}

// NewReconciler creates a stopped reconciler. viewed returns the client on screen.
func NewReconciler(cfg ReconcilerConfig, remote ports.Remote, clients *ClientService, stamp *SaveStamp, viewed func() string) *Reconciler {
	return &Reconciler{
		cfg:     cfg,
		clients: clients,
		remote:  remote,
		stamp:   stamp,
		typing:  NewSaveStamp(),
		viewed:  viewed,
	}
}

// OnSync registers a listener for applied remote changes
func (r *Reconciler) OnSync(fn func(SyncEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// MarkTyping holds off the poll channel while the user edits
func (r *Reconciler) MarkTyping() {
	r.typing.Mark()
}

// Running reports whether both channels are active
func (r *Reconciler) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Start launches the push and poll channels for ownerID. A second call is a no-op.
func (r *Reconciler) Start(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return domain.ErrNoSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return r.pushLoop(gctx, ownerID) })
	g.Go(func() error { return r.pollLoop(gctx, ownerID) })

	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	go func() {
		defer close(done)
		if err := g.Wait(); err != nil {
			logging.Logger.Error("Reconciler stopped", "error", err)
		}
		r.mu.Lock()
		if r.done == done {
			r.cancel()
			r.cancel, r.done = nil, nil
		}
		r.mu.Unlock()
	}()

	logging.Logger.Info("Reconciler started", "owner", ownerID)
	return nil
}

// Stop cancels both channels and waits for them to exit
func (r *Reconciler) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	r.pollMu.Lock()
	r.lastFP, r.lastID = nil, ""
	r.pollMu.Unlock()
	logging.Logger.Info("Reconciler stopped")
}

// PullAll fetches every remote client, merges it locally and pushes clients the
// remote has never seen.
func (r *Reconciler) PullAll(ctx context.Context, ownerID string) (SyncReport, error) {
	var report SyncReport
	if ownerID == "" {
		return report, domain.ErrNoSession
	}

	remotes, err := r.remote.FetchClients(ctx, ownerID)
	if err != nil {
		return report, fmt.Errorf("failed to fetch remote clients: %w", err)
	}
	known := make(map[string]bool, len(remotes))
	for _, rc := range remotes {
		if _, err := r.clients.ApplyRemote(ctx, rc); err != nil {
			return report, err
		}
		known[rc.ID] = true
		report.Pulled++
	}

	locals, err := r.clients.List(ctx)
	if err != nil {
		return report, err
	}
	var missing []domain.Client
	for _, c := range locals {
		if !known[c.ID] {
			missing = append(missing, c)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, c := range missing {
		g.Go(func() error {
			r.stamp.Mark()
			if err := r.remote.UpsertClient(gctx, c.ToRemote(ownerID)); err != nil {
				return fmt.Errorf("failed to push client %s: %w", c.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Pushed = len(missing)

	logging.Logger.Info("Full sync finished", "pulled", report.Pulled, "pushed", report.Pushed)
	return report, nil
}

func (r *Reconciler) pushLoop(ctx context.Context, ownerID string) error {
	for {
		err := r.remote.Subscribe(ctx, ownerID, func(ev domain.ChangeEvent) {
			r.handleEvent(ctx, ownerID, ev)
		})
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logging.Logger.Warn("Change feed dropped, resubscribing", "error", err, "backoff", r.cfg.ReconnectBackoff)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.cfg.ReconnectBackoff):
		}
	}
}

func (r *Reconciler) pollLoop(ctx context.Context, ownerID string) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.pollOnce(ctx, ownerID)
		}
	}
}

// handleEvent applies one pushed change unless it echoes our own save
func (r *Reconciler) handleEvent(ctx context.Context, ownerID string, ev domain.ChangeEvent) {
	if r.stamp.Within(r.cfg.SelfSaveWindow) {
		logging.Logger.Debug("Dropped change within self-save window", "id", ev.ID, "type", ev.Type)
		return
	}

	if ev.Type == domain.ChangeDelete {
		if err := r.clients.ApplyRemoteDelete(ctx, ev.ID); err != nil {
			logging.Logger.Warn("Failed to apply remote delete", "id", ev.ID, "error", err)
			return
		}
		r.emit(SyncEvent{ClientID: ev.ID, Deleted: true, ResetEditors: ev.ID == r.viewed()})
		return
	}

	rc := ev.Record
	if rc == nil {
		fetched, err := r.remote.FetchClient(ctx, ownerID, ev.ID)
		if err != nil {
			logging.Logger.Warn("Failed to fetch changed client", "id", ev.ID, "error", err)
			return
		}
		if fetched == nil {
			return
		}
		rc = fetched
	}
	if err := r.apply(ctx, *rc); err != nil {
		logging.Logger.Warn("Failed to apply remote change", "id", ev.ID, "error", err)
		return
	}

	// the next poll takes a fresh baseline rather than re-applying this change
	r.pollMu.Lock()
	if r.lastID == ev.ID {
		r.lastFP = nil
	}
	r.pollMu.Unlock()
}

// pollOnce compares the viewed client's fingerprint with the previous one.
// The first observation of a client only records a baseline.
func (r *Reconciler) pollOnce(ctx context.Context, ownerID string) {
	id := r.viewed()
	if id == "" {
		return
	}
	if r.typing.Within(r.cfg.TypingCooldown) {
		return
	}

	r.pollMu.Lock()
	defer r.pollMu.Unlock()

	if id != r.lastID {
		r.lastID = id
		r.lastFP = nil
	}
	fp, err := r.remote.FetchFingerprint(ctx, ownerID, id)
	if err != nil {
		logging.Logger.Debug("Fingerprint poll failed", "id", id, "error", err)
		return
	}
	if fp == nil {
		return
	}
	if r.lastFP == nil {
		r.lastFP = fp
		return
	}
	if fp.Equal(*r.lastFP) {
		return
	}
	r.lastFP = fp
	if r.stamp.Within(r.cfg.SelfSaveWindow) {
		return
	}

	rc, err := r.remote.FetchClient(ctx, ownerID, id)
	if err != nil || rc == nil {
		if err != nil {
			logging.Logger.Debug("Fetch after fingerprint change failed", "id", id, "error", err)
		}
		return
	}
	if err := r.apply(ctx, *rc); err != nil {
		logging.Logger.Warn("Failed to apply polled change", "id", id, "error", err)
	}
}

func (r *Reconciler) apply(ctx context.Context, rc domain.RemoteClient) error {
	if _, err := r.clients.ApplyRemote(ctx, rc); err != nil {
		if errors.Is(err, domain.ErrWriteRejected) {
			return err
		}
		return fmt.Errorf("failed to merge client %s: %w", rc.ID, err)
	}
	logging.Logger.Debug("Applied remote change", "id", rc.ID, "revision", rc.Revision)
	r.emit(SyncEvent{ClientID: rc.ID, ResetEditors: rc.ID == r.viewed()})
	return nil
}

func (r *Reconciler) emit(ev SyncEvent) {
	r.mu.Lock()
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
