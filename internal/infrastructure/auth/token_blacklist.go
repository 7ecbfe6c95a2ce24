package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates tokens before they expire (e.g., on logout).
// Entries are keyed by the token's JTI and live only as long as the
// token itself would.
type TokenBlacklist interface {
	// AddToBlacklist records a token's JTI for the remaining token lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted checks if a token's JTI has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklistWithClient creates a token blacklist sharing an
// existing Redis client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "token:blacklist:",
	}
}

// AddToBlacklist records a token's JTI for the remaining token lifetime
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	if err := b.client.Set(ctx, b.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token's JTI has been revoked
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// InMemoryTokenBlacklist implements TokenBlacklist with a local map.
// Suitable for single-instance deployments and testing.
type InMemoryTokenBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewInMemoryTokenBlacklist creates an in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		entries: make(map[string]time.Time),
	}
}

// AddToBlacklist records a token's JTI for the remaining token lifetime
func (b *InMemoryTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a token's JTI has been revoked
func (b *InMemoryTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	b.mu.RLock()
	expiresAt, exists := b.entries[jti]
	b.mu.RUnlock()

	if !exists {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		b.mu.Lock()
		delete(b.entries, jti)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
