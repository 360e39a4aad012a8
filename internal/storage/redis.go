package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seatwave/auth-front/internal/idp"
)

// Ensure RedisStore implements the Store interface
var _ Store = (*RedisStore)(nil)

// Key prefixes keep the two record kinds in separate namespaces so a
// session token can never be redeemed as login state.
const (
	statePrefix   = "state:"
	sessionPrefix = "session:"
)

// RedisStore is a Store backed by Redis. Expiry is native TTL; the one-time
// pop uses GETDEL so concurrent redemptions of the same state token resolve
// to a single winner server-side.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// PutState stores a login state payload under a one-time token.
func (s *RedisStore) PutState(ctx context.Context, token string, payload map[string]string, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal state payload: %w", err)
	}
	if err := s.client.Set(ctx, statePrefix+token, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state: %w", err)
	}
	return nil
}

// PopState atomically retrieves and deletes a state record.
func (s *RedisStore) PopState(ctx context.Context, token string) (map[string]string, error) {
	data, err := s.client.GetDel(ctx, statePrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop state: %w", err)
	}

	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state payload: %w", err)
	}
	return payload, nil
}

// PutSession stores an authenticated user's profile under a session token.
func (s *RedisStore) PutSession(ctx context.Context, token string, profile idp.Profile, ttl time.Duration) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal session profile: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+token, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetSession retrieves a session's profile without consuming it.
func (s *RedisStore) GetSession(ctx context.Context, token string) (idp.Profile, error) {
	data, err := s.client.Get(ctx, sessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return idp.Profile{}, ErrSessionNotFound
	}
	if err != nil {
		return idp.Profile{}, fmt.Errorf("failed to get session: %w", err)
	}

	var profile idp.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return idp.Profile{}, fmt.Errorf("failed to unmarshal session profile: %w", err)
	}
	return profile, nil
}
