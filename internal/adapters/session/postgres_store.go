package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focuswork/internal/domain"
	"focuswork/internal/ports"
)

// PostgresStore keeps session token hashes in auth_sessions. Used when no Redis is configured.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.SessionStore = (*PostgresStore)(nil)

// NewPostgresStore wraps an open pool
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// SaveSession stores a token hash until expiresAt
func (s *PostgresStore) SaveSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO auth_sessions (token_hash, user_id, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET user_id = EXCLUDED.user_id, expires_at = EXCLUDED.expires_at`,
		tokenHash, userID, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LookupSession resolves an unexpired token hash into its user
func (s *PostgresStore) LookupSession(ctx context.Context, tokenHash string) (string, time.Time, error) {
	var userID string
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM auth_sessions WHERE token_hash=$1 AND expires_at > $2`,
		tokenHash, s.now().UTC(),
	).Scan(&userID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, domain.ErrNoSession
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("lookup session: %w", err)
	}
	return userID, expiresAt, nil
}

// RevokeSession deletes a token hash
func (s *PostgresStore) RevokeSession(ctx context.Context, tokenHash string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE token_hash=$1`, tokenHash); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
