package cache

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fxcalc/pkg/domain/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateCache(t *testing.T) {
	c := NewMemoryRateCache()
	ctx := context.Background()

	snap, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "empty slot reads as nil, not an error")

	stored := &rates.Snapshot{
		Base:     "USD",
		Date:     "2025-01-02",
		Rates:    map[string]float64{"USD": 1, "EUR": 0.9},
		CachedAt: time.Now(),
	}
	require.NoError(t, c.Set(ctx, stored))

	snap, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, snap)

	// The slot replaces wholesale; no merging across snapshots.
	replacement := &rates.Snapshot{
		Base:     "USD",
		Date:     "2025-01-03",
		Rates:    map[string]float64{"USD": 1},
		CachedAt: time.Now(),
	}
	require.NoError(t, c.Set(ctx, replacement))
	snap, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-03", snap.Date)
	assert.NotContains(t, snap.Rates, "EUR")
}
