// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"markets_backend/internal/feature/candles/domain/entity"
	"markets_backend/internal/feature/candles/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching.
// Only successful provider responses are cached; errors always pass through.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "bars".
// A nil rdb disables caching entirely.
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "bars"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// GetRecentBars returns the rolling window, checking the cache first.
func (c *CachingMarketRepository) GetRecentBars(ctx context.Context, symbol string, interval entity.Interval, lookbackDays int) ([]entity.Bar, error) {
	key := fmt.Sprintf("%s:recent:%s:%s:%d", c.namespace, safe(symbol), interval, lookbackDays)
	return c.cached(ctx, key, c.ttl, func() ([]entity.Bar, error) {
		return c.inner.GetRecentBars(ctx, symbol, interval, lookbackDays)
	})
}

// GetDailyBars returns daily bars for [start, end), checking the cache first.
// Ranges that closed more than a day ago are kept for HistoricalTTL.
func (c *CachingMarketRepository) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
	key := fmt.Sprintf("%s:daily:%s:%d:%d", c.namespace, safe(symbol), start.Unix(), end.Unix())
	ttl := TTLForRange(c.now(), end, c.ttl)
	return c.cached(ctx, key, ttl, func() ([]entity.Bar, error) {
		return c.inner.GetDailyBars(ctx, symbol, start, end)
	})
}

func (c *CachingMarketRepository) cached(ctx context.Context, key string, ttl time.Duration, load func() ([]entity.Bar, error)) ([]entity.Bar, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		slog.Warn("corrupted cache entry", "key", key)
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to provider
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
			slog.Warn("failed to store cache entry", "key", key, "error", err)
		}
	}
	return out, nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
