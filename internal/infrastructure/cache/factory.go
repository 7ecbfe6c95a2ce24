package cache

import (
	"fmt"
	"time"

	"github.com/rxreturns/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DistributorCacheFactory creates distributor caches based on configuration
type DistributorCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DistributorCacheFactoryOption is a functional option for configuring the factory
type DistributorCacheFactoryOption func(*DistributorCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DistributorCacheFactoryOption {
	return func(f *DistributorCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) DistributorCacheFactoryOption {
	return func(f *DistributorCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDistributorCacheFactory creates a new factory
func NewDistributorCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...DistributorCacheFactoryOption) *DistributorCacheFactory {
	f := &DistributorCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based distributor cache
func (f *DistributorCacheFactory) CreateRedisCache() (DistributorCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisDistributorCache(redisCfg, f.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis distributor cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory distributor cache
func (f *DistributorCacheFactory) CreateInMemoryCache() DistributorCache {
	return NewInMemoryDistributorCache(f.ttl)
}

// CreateCache creates a distributor cache, preferring Redis and falling
// back to in-memory when Redis is unavailable and fallback is allowed.
func (f *DistributorCacheFactory) CreateCache() (DistributorCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis distributor cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for distributor cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory distributor cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
