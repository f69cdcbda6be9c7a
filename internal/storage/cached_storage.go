package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mashley00/venue-webhook/internal/cache"
	"github.com/mashley00/venue-webhook/internal/database"
	"github.com/mashley00/venue-webhook/internal/logging"
)

// CachedStorage wraps an Operations implementation with caching. Market
// queries and stats are served from Badger when warm; inserts invalidate
// everything, since an import replaces the dataset.
type CachedStorage struct {
	inner  Operations
	cache  cache.Cache
	keyGen *cache.KeyGenerator
	config *CacheStorageConfig
}

// CacheStorageConfig configures the caching behavior
type CacheStorageConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
	MarketTTL  time.Duration
	StatsTTL   time.Duration
}

// NewCachedStorage creates a new CachedStorage instance
func NewCachedStorage(inner Operations, cacheImpl cache.Cache, config *CacheStorageConfig) *CachedStorage {
	if config == nil {
		config = &CacheStorageConfig{
			Enabled:    true,
			DefaultTTL: 5 * time.Minute,
			MarketTTL:  15 * time.Minute,
			StatsTTL:   1 * time.Hour,
		}
	}

	return &CachedStorage{
		inner:  inner,
		cache:  cacheImpl,
		keyGen: cache.NewKeyGenerator("vor"),
		config: config,
	}
}

// GetCacheMetrics returns cache performance metrics
func (cs *CachedStorage) GetCacheMetrics() *cache.Metrics {
	if cs.cache == nil {
		return nil
	}
	return cs.cache.GetMetrics()
}

// InsertEvents delegates to the inner store and invalidates the cache
func (cs *CachedStorage) InsertEvents(ctx context.Context, events []database.Event) error {
	if err := cs.inner.InsertEvents(ctx, events); err != nil {
		return err
	}
	cs.InvalidateAll(ctx)
	return nil
}

// MarketEvents serves market queries through the cache
func (cs *CachedStorage) MarketEvents(ctx context.Context, filter database.EventFilter) ([]database.Event, error) {
	if !cs.enabled() {
		return cs.inner.MarketEvents(ctx, filter)
	}

	key := cs.keyGen.FilterKey(filter)

	if data, err := cs.cache.Get(ctx, key); err == nil {
		var events []database.Event
		if err := json.Unmarshal(data, &events); err == nil {
			return events, nil
		}
		// Corrupt entry, drop it and fall through
		_ = cs.cache.Delete(ctx, key)
	}

	events, err := cs.inner.MarketEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(events); err == nil {
		if err := cs.cache.Set(ctx, key, data, cs.config.MarketTTL); err != nil {
			logging.Warn("failed to cache market events", logging.Err(err))
		}
	}

	return events, nil
}

// Markets serves the market listing through the cache
func (cs *CachedStorage) Markets(ctx context.Context) ([]database.MarketInfo, error) {
	if !cs.enabled() {
		return cs.inner.Markets(ctx)
	}

	key := cs.keyGen.MarketsKey()

	if data, err := cs.cache.Get(ctx, key); err == nil {
		var markets []database.MarketInfo
		if err := json.Unmarshal(data, &markets); err == nil {
			return markets, nil
		}
		_ = cs.cache.Delete(ctx, key)
	}

	markets, err := cs.inner.Markets(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(markets); err == nil {
		_ = cs.cache.Set(ctx, key, data, cs.config.StatsTTL)
	}

	return markets, nil
}

// Stats serves store statistics through the cache
func (cs *CachedStorage) Stats(ctx context.Context) (*database.EventStats, error) {
	if !cs.enabled() {
		return cs.inner.Stats(ctx)
	}

	key := cs.keyGen.StatsKey()

	if data, err := cs.cache.Get(ctx, key); err == nil {
		var stats database.EventStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
		_ = cs.cache.Delete(ctx, key)
	}

	stats, err := cs.inner.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		_ = cs.cache.Set(ctx, key, data, cs.config.StatsTTL)
	}

	return stats, nil
}

// InvalidateAll drops every cached entry under this service's prefix
func (cs *CachedStorage) InvalidateAll(ctx context.Context) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.DeleteByPattern(ctx, cs.keyGen.AllPattern()); err != nil {
		logging.Warn("cache invalidation failed", logging.Err(err))
	}
}

// Close closes the inner store. The cache is owned by the caller.
func (cs *CachedStorage) Close() error {
	return cs.inner.Close()
}

func (cs *CachedStorage) enabled() bool {
	return cs.config.Enabled && cs.cache != nil
}
