// Package session provides storage backends for issued auth session tokens.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"focuswork/internal/domain"
	"focuswork/internal/ports"
)

// tokenData holds the data stored for each session token
type tokenData struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
}

// RedisStore implements session token storage using Redis
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ ports.SessionStore = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-backed session store
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "focuswork:session:",
	}
}

func (s *RedisStore) key(tokenHash string) string {
	return s.prefix + tokenHash
}

// SaveSession stores a token hash until expiresAt
func (s *RedisStore) SaveSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	data, err := json.Marshal(tokenData{
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt.UTC(),
		UserID:    userID,
	})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", expiresAt)
	}

	if err := s.client.Set(ctx, s.key(tokenHash), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LookupSession resolves a token hash into its user
func (s *RedisStore) LookupSession(ctx context.Context, tokenHash string) (string, time.Time, error) {
	raw, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", time.Time{}, domain.ErrNoSession
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("lookup session: %w", err)
	}

	var data tokenData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return "", time.Time{}, fmt.Errorf("unmarshal token data: %w", err)
	}
	return data.UserID, data.ExpiresAt, nil
}

// RevokeSession deletes a token hash
func (s *RedisStore) RevokeSession(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, s.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
