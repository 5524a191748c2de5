package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix namespaces session keys in Redis. Key construction lives
// entirely behind the store so the wire format is an implementation detail.
const sessionKeyPrefix = "sess:"

// sessionIDBytes is the number of random bytes in a session identifier.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters; collisions
// are not a practical concern, so Create needs no compare-and-swap.
const sessionIDBytes = 32

// SessionTTL is how long a session lives after creation. The expiry is set
// once and never refreshed on access -- no sliding expiry. It matches the
// token lifetime so neither outlives the other.
const SessionTTL = 24 * time.Hour

// SessionStore is the durable mapping from session identifier to user
// identity. Sessions are immutable: created at login, destroyed by explicit
// revocation or TTL expiry, never updated in place.
type SessionStore interface {
	// Create sets the sessionID -> userID mapping with the store's TTL.
	// Idempotent per sessionID.
	Create(ctx context.Context, sessionID, userID string) error

	// Lookup returns the user ID a session authorizes. A miss -- whether the
	// session never existed or has expired -- is ErrSessionNotFound; an
	// infrastructure failure is ErrStoreUnavailable.
	Lookup(ctx context.Context, sessionID string) (string, error)

	// Revoke deletes the session immediately. Revoking a session that does
	// not exist is not an error.
	Revoke(ctx context.Context, sessionID string) error
}

// redisSessionStore implements SessionStore on a Redis client.
type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSessionStore creates a session store backed by the given Redis
// client with the given fixed TTL.
func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *redisSessionStore) Create(ctx context.Context, sessionID, userID string) error {
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: storing session: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisSessionStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: reading session: %v", ErrStoreUnavailable, err)
	}
	return userID, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("%w: deleting session: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// generateSessionID creates a cryptographically random hex-encoded session
// identifier.
func generateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
