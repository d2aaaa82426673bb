package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records revoked session ids in Redis so every replica rejects
// a logged-out token. Keys expire with the token they shadow.
// Key format: session:revoked:<session_id>
type SessionStore struct {
	client revocationClient
}

// revocationClient is the subset of *redis.Client the store uses.
type revocationClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client revocationClient) *SessionStore {
	return &SessionStore{client: client}
}

// Revoke marks the session as logged out for ttl.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session was logged out.
func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("session lookup: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:revoked:" + sessionID
}
