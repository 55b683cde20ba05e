// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"markets_backend/internal/feature/candles/usecase"
	"markets_backend/internal/platform/cache"
	"markets_backend/internal/platform/config"
	"markets_backend/internal/platform/externalapi/yahoo"
	infrahttp "markets_backend/internal/platform/http"
)

// NewMarket creates the Yahoo-backed MarketRepository, wrapped with the Redis cache.
// A nil rdb leaves the cache disabled and every call goes to the provider.
func NewMarket(cfg *config.Config, rdb *redis.Client) usecase.MarketRepository {
	ycfg := yahoo.Config{
		BaseURL:   cfg.Provider.BaseURL,
		UserAgent: cfg.Provider.UserAgent,
		Timeout:   cfg.Provider.Timeout,
	}.WithDefaults()
	httpClient := infrahttp.NewHTTPClient(ycfg.Timeout, cfg.Bulk.Concurrency)
	market := yahoo.NewYahooMarket(ycfg, httpClient)
	return cache.NewCachingMarketRepository(rdb, cfg.Cache.TTL, market, "bars")
}
