package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rxreturns/backend/internal/domain/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDistributor(t *testing.T, name string) *pricing.Distributor {
	t.Helper()
	distributor, err := pricing.NewDistributor(name)
	require.NoError(t, err)
	distributor.Phone = "555-0100"
	return distributor
}

func TestInMemoryDistributorCache_GetSet(t *testing.T) {
	t.Run("miss before set, hit after", func(t *testing.T) {
		cache := NewInMemoryDistributorCache(time.Minute)
		defer cache.Close()

		ctx := context.Background()

		_, found, err := cache.Get(ctx, "Alpha Returns")
		assert.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, cache.Set(ctx, "Alpha Returns", testDistributor(t, "Alpha Returns")))

		cached, found, err := cache.Get(ctx, "Alpha Returns")
		assert.NoError(t, err)
		assert.True(t, found)
		require.NotNil(t, cached)
		assert.Equal(t, "Alpha Returns", cached.Name)
		assert.Equal(t, "555-0100", cached.Phone)
	})

	t.Run("returned entry is a copy", func(t *testing.T) {
		cache := NewInMemoryDistributorCache(time.Minute)
		defer cache.Close()

		ctx := context.Background()
		require.NoError(t, cache.Set(ctx, "Alpha Returns", testDistributor(t, "Alpha Returns")))

		first, _, err := cache.Get(ctx, "Alpha Returns")
		require.NoError(t, err)
		first.Phone = "mutated"

		second, _, err := cache.Get(ctx, "Alpha Returns")
		require.NoError(t, err)
		assert.Equal(t, "555-0100", second.Phone)
	})
}

func TestInMemoryDistributorCache_Expiry(t *testing.T) {
	cache := NewInMemoryDistributorCache(10 * time.Millisecond)
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "Alpha Returns", testDistributor(t, "Alpha Returns")))

	time.Sleep(20 * time.Millisecond)

	_, found, err := cache.Get(ctx, "Alpha Returns")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryDistributorCache_Invalidate(t *testing.T) {
	cache := NewInMemoryDistributorCache(time.Minute)
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "Alpha Returns", testDistributor(t, "Alpha Returns")))
	require.NoError(t, cache.Invalidate(ctx, "Alpha Returns"))

	_, found, err := cache.Get(ctx, "Alpha Returns")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryDistributorCache_CloseIsIdempotent(t *testing.T) {
	cache := NewInMemoryDistributorCache(time.Minute)

	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}
