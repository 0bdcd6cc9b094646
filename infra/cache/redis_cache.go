package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/amirasaad/fxcalc/pkg/domain/rates"
	"github.com/redis/go-redis/v9"
)

// RedisRateCache implements cache.RateCache on Redis, storing the snapshot
// as a single JSON blob under a prefixed key with no Redis expiry: a stale
// snapshot must stay readable as the offline fallback.
type RedisRateCache struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// NewRedisRateCache creates a RedisRateCache from redis options.
func NewRedisRateCache(opt *redis.Options, prefix string, logger *slog.Logger) *RedisRateCache {
	return &RedisRateCache{
		client: redis.NewClient(opt),
		key:    prefix + "rates:snapshot",
		logger: logger,
	}
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *RedisRateCache) Get(ctx context.Context) (*rates.Snapshot, error) {
	val, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("rate cache miss", "key", c.key)
		return nil, nil
	}
	if err != nil {
		c.logger.Error("rate cache get failed", "key", c.key, "error", err)
		return nil, err
	}
	var snap rates.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		c.logger.Error("rate cache unmarshal failed", "key", c.key, "error", err)
		return nil, err
	}
	c.logger.Debug("rate cache hit", "key", c.key, "base", snap.Base, "date", snap.Date)
	return &snap, nil
}

// Set replaces the cached snapshot.
func (c *RedisRateCache) Set(ctx context.Context, snap *rates.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.Error("rate cache marshal failed", "key", c.key, "error", err)
		return err
	}
	if err := c.client.Set(ctx, c.key, data, 0).Err(); err != nil {
		c.logger.Error("rate cache set failed", "key", c.key, "error", err)
		return err
	}
	c.logger.Debug("rate cache set", "key", c.key, "base", snap.Base, "date", snap.Date)
	return nil
}

// Ping verifies connectivity at startup.
func (c *RedisRateCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
