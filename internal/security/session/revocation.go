package session

import (
	"context"
	"time"

	"github.com/yourorg/moodtunes/internal/infrastructure/redis"
	"github.com/yourorg/moodtunes/pkg/cache"
)

// RevocationStore tracks token ids invalidated before their natural expiry
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revocationKeyPrefix = "session:revoked:"

// RedisRevocationStore keeps revoked token ids in Redis, surviving restarts
// and shared across replicas
type RedisRevocationStore struct {
	redis *redis.Client
}

// NewRedisRevocationStore creates a Redis-backed revocation store
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{redis: client}
}

// Revoke marks a token id revoked for the given TTL
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.redis.Set(ctx, revocationKeyPrefix+tokenID, "1", ttl)
}

// IsRevoked reports whether a token id has been revoked
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.redis.Exists(ctx, revocationKeyPrefix+tokenID)
}

// MemoryRevocationStore keeps revoked token ids in process memory. Used when
// Redis is not configured; revocations are lost on restart, which only
// shortens the window in which a logged-out token is refused.
type MemoryRevocationStore struct {
	cache *cache.Cache
}

// NewMemoryRevocationStore creates an in-memory revocation store
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{cache: cache.New()}
}

// Revoke marks a token id revoked for the given TTL. Each revocation also
// purges entries whose tokens have since expired, bounding the map by the
// number of logouts within one session window.
func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.cache.Purge()
	s.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

// IsRevoked reports whether a token id has been revoked
func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, revoked := s.cache.Get(tokenID)
	return revoked, nil
}
