package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is an app_users row
type User struct {
	CreatedAt    time.Time
	Email        string
	ID           string
	PasswordHash string
}

// ErrUserNotFound is returned when no user matches
var ErrUserNotFound = errors.New("user not found")

// UserStore is the account lookup the authenticator needs
type UserStore interface {
	CreateUser(ctx context.Context, user User) error
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)
}

var _ UserStore = (*PostgresStore)(nil)

// CreateUser inserts a new account
func (s *PostgresStore) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_users (id, email, password_hash) VALUES ($1, $2, $3)`,
		u.ID, normalizeEmail(u.Email), u.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UserByEmail looks an account up case-insensitively
func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (User, error) {
	return s.queryUser(ctx, `SELECT id, email, password_hash, created_at FROM app_users WHERE email=$1`, normalizeEmail(email))
}

// UserByID looks an account up by id
func (s *PostgresStore) UserByID(ctx context.Context, id string) (User, error) {
	return s.queryUser(ctx, `SELECT id, email, password_hash, created_at FROM app_users WHERE id=$1`, id)
}

func (s *PostgresStore) queryUser(ctx context.Context, query string, arg string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
