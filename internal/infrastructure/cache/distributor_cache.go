package cache

import (
	"context"

	"github.com/rxreturns/backend/internal/domain/pricing"
)

// DistributorCache caches distributor directory entries by name. The
// directory is small and rarely changes, so package proposals read it
// through a cache instead of hitting the database per distributor.
type DistributorCache interface {
	// Get returns the cached entry and whether it was present
	Get(ctx context.Context, name string) (*pricing.Distributor, bool, error)

	// Set stores an entry under the distributor's name
	Set(ctx context.Context, name string, distributor *pricing.Distributor) error

	// Invalidate removes an entry after a directory update
	Invalidate(ctx context.Context, name string) error

	// Close releases any resources held by the cache
	Close() error
}
