package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "swdb:session:"

// Store keeps active session ids in Redis so tokens can be revoked on
// logout. A token whose session id is absent here is treated as logged out
// even if the signature is still valid.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store with the given session lifetime
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create registers a new session for username and returns its id
func (s *Store) Create(ctx context.Context, username string) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+id, username, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// Alive reports whether the session id is still active
func (s *Store) Alive(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// Revoke removes the session id; revoking an unknown id is not an error
func (s *Store) Revoke(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
