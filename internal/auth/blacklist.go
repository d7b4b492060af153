package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist keys share the Redis instance with the summary cache; the prefix
// keeps revocation entries out of unrelated data.
const blacklistKeyPrefix = "jwt:blacklist:"

// TokenBlacklist records revoked token ids until their natural expiry. Store
// errors surface to the caller; verification must fail closed on them.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisBlacklist is the shared, TTL-backed production implementation.
type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist wraps an existing Redis client.
func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

// Revoke stores the token id until ttl elapses. A non-positive ttl means the
// token already expired on its own; nothing is stored.
func (b *RedisBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether a live revocation entry exists for the token id.
func (b *RedisBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlacklist is an in-process implementation for tests and local runs
// without Redis.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryBlacklist creates an empty in-memory blacklist.
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time)}
}

// Revoke records the token id until ttl elapses.
func (b *MemoryBlacklist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[tokenID] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token id has a live entry, lazily evicting
// expired ones.
func (b *MemoryBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.RLock()
	expiry, ok := b.entries[tokenID]
	b.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		b.mu.Lock()
		delete(b.entries, tokenID)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}
