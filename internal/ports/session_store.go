package ports

import (
	"context"
	"time"
)

// SessionStore keeps issued session tokens (by hash) with an expiry.
// LookupSession returns domain.ErrNoSession for an unknown or expired hash.
type SessionStore interface {
	LookupSession(ctx context.Context, tokenHash string) (userID string, expiresAt time.Time, err error)
	RevokeSession(ctx context.Context, tokenHash string) error
	SaveSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
}
