package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rxreturns/backend/internal/domain/pricing"
)

// entry holds one cached distributor with its expiration
type entry struct {
	distributor pricing.Distributor
	expiresAt   time.Time
}

// InMemoryDistributorCache implements DistributorCache using an in-memory map.
// Suitable for single-instance deployments and testing; entries are not
// shared across process instances.
type InMemoryDistributorCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryDistributorCache creates an in-memory distributor cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryDistributorCache(ttl time.Duration) *InMemoryDistributorCache {
	cache := &InMemoryDistributorCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get returns the cached entry and whether it was present
func (c *InMemoryDistributorCache) Get(ctx context.Context, name string) (*pricing.Distributor, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[name]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}

	distributor := e.distributor
	return &distributor, true, nil
}

// Set stores an entry under the distributor's name
func (c *InMemoryDistributorCache) Set(ctx context.Context, name string, distributor *pricing.Distributor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = entry{
		distributor: *distributor,
		expiresAt:   time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate removes an entry after a directory update
func (c *InMemoryDistributorCache) Invalidate(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, name)
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryDistributorCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryDistributorCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

// removeExpired deletes entries whose TTL has passed
func (c *InMemoryDistributorCache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for name, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, name)
		}
	}
}

// Ensure InMemoryDistributorCache implements DistributorCache
var _ DistributorCache = (*InMemoryDistributorCache)(nil)
