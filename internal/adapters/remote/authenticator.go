package remote

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"focuswork/internal/domain"
	"focuswork/internal/ports"
)

// DefaultSessionTTL is how long an issued session stays valid
const DefaultSessionTTL = 30 * 24 * time.Hour

// Authenticator verifies passwords against app_users and issues opaque tokens.
// Only token hashes are kept server side.
type Authenticator struct {
	now      func() time.Time
	sessions ports.SessionStore
	ttl      time.Duration
	users    UserStore
}

var _ ports.Authenticator = (*Authenticator)(nil)

// NewAuthenticator creates an authenticator
func NewAuthenticator(users UserStore, sessions ports.SessionStore) *Authenticator {
	return &Authenticator{
		now:      time.Now,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		users:    users,
	}
}

// SignIn checks the credentials and returns a fresh session
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := a.users.UserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	expiresAt := a.now().Add(a.ttl).UTC()
	if err := a.sessions.SaveSession(ctx, HashToken(token), user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &domain.Session{
		Email:     user.Email,
		ExpiresAt: expiresAt,
		Token:     token,
		UserID:    user.ID,
	}, nil
}

// CurrentUser resolves a token into its session, domain.ErrNoSession when unknown or expired
func (a *Authenticator) CurrentUser(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	userID, expiresAt, err := a.sessions.LookupSession(ctx, HashToken(token))
	if err != nil {
		return nil, err
	}
	if !a.now().Before(expiresAt) {
		return nil, domain.ErrNoSession
	}

	user, err := a.users.UserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Email:     user.Email,
		ExpiresAt: expiresAt,
		Token:     token,
		UserID:    user.ID,
	}, nil
}

// SignOut revokes the token
func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sessions.RevokeSession(ctx, HashToken(token))
}

// Register creates an account with a bcrypt password hash
func (a *Authenticator) Register(ctx context.Context, email, password string) (User, error) {
	if email == "" || len(password) < 8 {
		return User{}, errors.New("email and a password of at least 8 characters are required")
	}
	if _, err := a.users.UserByEmail(ctx, email); err == nil {
		return User{}, errors.New("email already registered")
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		Email:        normalizeEmail(email),
		ID:           uuid.New().String(),
		PasswordHash: string(hash),
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// HashToken is the server-side key for a token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
