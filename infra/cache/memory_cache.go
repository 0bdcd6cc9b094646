package cache

import (
	"context"
	"sync"

	"github.com/amirasaad/fxcalc/pkg/domain/rates"
)

// MemoryRateCache implements cache.RateCache with an in-process slot.
// Used in tests and when no Redis is configured; it does not survive
// restarts, so cold starts with a dead rate source land in offline mode.
type MemoryRateCache struct {
	mu   sync.RWMutex
	snap *rates.Snapshot
}

// NewMemoryRateCache creates an empty in-memory cache.
func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{}
}

// Get returns the held snapshot, or (nil, nil) when empty.
func (c *MemoryRateCache) Get(_ context.Context) (*rates.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap, nil
}

// Set replaces the held snapshot.
func (c *MemoryRateCache) Set(_ context.Context, snap *rates.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	return nil
}
