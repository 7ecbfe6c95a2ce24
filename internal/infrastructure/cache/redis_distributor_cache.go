package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rxreturns/backend/internal/domain/pricing"
)

const distributorKeyPrefix = "distributor:directory:"

// RedisDistributorCache implements DistributorCache using Redis.
// This is suitable for distributed deployments where multiple instances
// should share the directory cache.
type RedisDistributorCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisDistributorCache creates a new Redis-based distributor cache
func NewRedisDistributorCache(cfg RedisConfig, ttl time.Duration) (*RedisDistributorCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDistributorCache{
		client:    client,
		keyPrefix: distributorKeyPrefix,
		ttl:       ttl,
	}, nil
}

// NewRedisDistributorCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisDistributorCacheWithClient(client *redis.Client, ttl time.Duration) *RedisDistributorCache {
	return &RedisDistributorCache{
		client:    client,
		keyPrefix: distributorKeyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached entry and whether it was present
func (c *RedisDistributorCache) Get(ctx context.Context, name string) (*pricing.Distributor, bool, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read distributor from cache: %w", err)
	}

	var distributor pricing.Distributor
	if err := json.Unmarshal(payload, &distributor); err != nil {
		// A corrupt entry behaves like a miss so the caller refreshes it.
		return nil, false, nil
	}
	return &distributor, true, nil
}

// Set stores an entry under the distributor's name
func (c *RedisDistributorCache) Set(ctx context.Context, name string, distributor *pricing.Distributor) error {
	payload, err := json.Marshal(distributor)
	if err != nil {
		return fmt.Errorf("failed to encode distributor for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+name, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write distributor to cache: %w", err)
	}
	return nil
}

// Invalidate removes an entry after a directory update
func (c *RedisDistributorCache) Invalidate(ctx context.Context, name string) error {
	if err := c.client.Del(ctx, c.keyPrefix+name).Err(); err != nil {
		return fmt.Errorf("failed to invalidate distributor cache entry: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisDistributorCache) Close() error {
	return c.client.Close()
}

// Ensure RedisDistributorCache implements DistributorCache
var _ DistributorCache = (*RedisDistributorCache)(nil)
