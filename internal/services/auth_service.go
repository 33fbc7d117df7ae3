package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// AuthService signs the user in against the backend and keeps the session token
// in a local file so later commands stay signed in.
type AuthService struct {
	auth   ports.Authenticator
	cached *domain.Session
	loaded bool
	mu     sync.Mutex
	now    func() time.Time
	path   string
}

// NewAuthService creates the service. auth may be nil when no backend is configured.
func NewAuthService(auth ports.Authenticator, sessionPath string) *AuthService {
	return &AuthService{
		auth: auth,
		now:  time.Now,
		path: sessionPath,
	}
}

// Login verifies the credentials and stores the resulting session
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if s.auth == nil {
		return nil, fmt.Errorf("%w: no database configured", domain.ErrOffline)
	}
	session, err := s.auth.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked(session); err != nil {
		return nil, err
	}
	logging.Logger.Info("Signed in", "user", session.UserID)
	return session, nil
}

// Logout revokes the token remotely when possible and forgets it locally
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.readLocked()
	if session != nil && s.auth != nil {
		if err := s.auth.SignOut(ctx, session.Token); err != nil {
			logging.Logger.Warn("Failed to revoke session remotely", "error", err)
		}
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	s.cached = nil
	return nil
}

// Cached returns the locally stored session if it has not expired, without
// asking the backend
func (s *AuthService) Cached() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.readLocked()
	if !session.Valid(s.now()) {
		return nil
	}
	copied := *session
	return &copied
}

// Current asks the backend whether the stored token is still accepted
func (s *AuthService) Current(ctx context.Context) (*domain.Session, error) {
	cached := s.Cached()
	if cached == nil {
		return nil, domain.ErrNoSession
	}
	if s.auth == nil {
		return nil, fmt.Errorf("%w: no database configured", domain.ErrOffline)
	}
	session, err := s.auth.CurrentUser(ctx, cached.Token)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// OwnerID is the signed-in user id, or "" when there is no usable session
func (s *AuthService) OwnerID() string {
	if session := s.Cached(); session != nil {
		return session.UserID
	}
	return ""
}

func (s *AuthService) readLocked() *domain.Session {
	if s.loaded {
		return s.cached
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Logger.Warn("Failed to read session file", "path", s.path, "error", err)
		}
		return nil
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		logging.Logger.Warn("Ignoring corrupt session file", "path", s.path, "error", err)
		return nil
	}
	s.cached = &session
	return s.cached
}

func (s *AuthService) writeLocked(session *domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	copied := *session
	s.cached = &copied
	s.loaded = true
	return nil
}
