package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL is how long an issued session stays valid. Logging in does not
// refresh it; sessions expire a fixed interval after issuance.
const SessionTTL = 24 * time.Hour

// ErrSessionNotFound means the token does not map to a live session, whether
// it never existed, was deleted by logout, or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque session tokens to user IDs with a TTL.
type SessionStore interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in redis, one key per token. Expiry is delegated
// to the server's key TTL.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore builds a redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.Client.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.Client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session get: %w", err)
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.Client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore is an in-process session store for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry

	// Now is overridable in tests to drive expiry.
	Now func() time.Time
}

// NewMemoryStore builds an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]sessionEntry),
		Now:      time.Now,
	}
}

func (s *MemoryStore) Set(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionEntry{userID: userID, expiresAt: s.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return "", ErrSessionNotFound
	}
	if !s.Now().Before(entry.expiresAt) {
		delete(s.sessions, token)
		return "", ErrSessionNotFound
	}
	return entry.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
