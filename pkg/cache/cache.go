package cache

import (
	"context"

	"github.com/amirasaad/fxcalc/pkg/domain/rates"
)

// RateCache is the durable slot holding the last fetched rate snapshot.
//
// The slot survives process restarts and is never expired by the cache
// itself: staleness is judged by the caller from Snapshot.CachedAt, since
// an arbitrarily old snapshot must remain readable as an offline fallback.
type RateCache interface {
	// Get returns the cached snapshot, or (nil, nil) when the slot is empty.
	Get(ctx context.Context) (*rates.Snapshot, error)
	// Set replaces the slot wholesale.
	Set(ctx context.Context, snap *rates.Snapshot) error
}
