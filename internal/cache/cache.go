package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"sunfutures/internal/observability/metrics"
)

// Cache wraps a Store with single-flight deduplication: concurrent callers
// sharing a key trigger exactly one computation and receive the same result.
// Errors are never stored; a backend outage degrades to direct computation.
type Cache struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func New(store Store, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "forecast_cache"),
	}
}

// Do returns the cached value for key, or runs compute once across all
// concurrent callers for the key and stores the result with the TTL. The
// second return reports whether the value came from the store.
func (c *Cache) Do(ctx context.Context, key string, compute func(ctx context.Context) ([]byte, error)) ([]byte, bool, error) {
	if value, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("cache backend read failed, computing directly", "error", err)
	} else if ok {
		metrics.CacheHit()
		return value, true, nil
	}
	metrics.CacheMiss()

	value, err, _ := c.group.Do(key, func() (any, error) {
		// recheck inside the flight: another caller may have just stored it
		if value, ok, err := c.store.Get(ctx, key); err == nil && ok {
			return value, nil
		}
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, key, value, c.ttl); err != nil {
			c.logger.Warn("cache backend write failed, serving uncached result", "error", err)
		}
		return value, nil
	})
	if err != nil {
		return nil, false, err
	}
	return value.([]byte), false, nil
}
