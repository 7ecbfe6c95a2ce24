package cache

import (
	"context"

	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/rxreturns/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CachedDistributorRepository decorates a DistributorRepository with a
// read-through cache on name lookups. List reads always hit the
// underlying store; writes go through and invalidate the cached entry.
type CachedDistributorRepository struct {
	inner  pricing.DistributorRepository
	cache  DistributorCache
	logger *zap.Logger
}

// NewCachedDistributorRepository creates a caching decorator around repo
func NewCachedDistributorRepository(inner pricing.DistributorRepository, cache DistributorCache, logger *zap.Logger) *CachedDistributorRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedDistributorRepository{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

// FindByName returns the distributor from cache when present, otherwise
// reads through and populates the cache. Cache failures degrade to a
// direct read; they never fail the lookup.
func (r *CachedDistributorRepository) FindByName(ctx context.Context, name string) (*pricing.Distributor, error) {
	if distributor, found, err := r.cache.Get(ctx, name); err == nil && found {
		return distributor, nil
	} else if err != nil {
		r.logger.Warn("distributor cache read failed", zap.String("name", name), zap.Error(err))
	}

	distributor, err := r.inner.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, name, distributor); err != nil {
		r.logger.Warn("distributor cache write failed", zap.String("name", name), zap.Error(err))
	}
	return distributor, nil
}

// FindAll lists distributors from the underlying store
func (r *CachedDistributorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.Distributor, error) {
	return r.inner.FindAll(ctx, filter)
}

// Save writes through to the store and invalidates the cached entry
func (r *CachedDistributorRepository) Save(ctx context.Context, distributor *pricing.Distributor) error {
	if err := r.inner.Save(ctx, distributor); err != nil {
		return err
	}
	if err := r.cache.Invalidate(ctx, distributor.Name); err != nil {
		r.logger.Warn("distributor cache invalidation failed", zap.String("name", distributor.Name), zap.Error(err))
	}
	return nil
}

// Ensure CachedDistributorRepository implements DistributorRepository
var _ pricing.DistributorRepository = (*CachedDistributorRepository)(nil)
