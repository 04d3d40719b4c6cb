// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dash/internal/app/config"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	"stock_dash/internal/platform/cache"
	"stock_dash/internal/platform/externalapi/twelvedata"
	"stock_dash/internal/platform/externalapi/yahoo"
	infrahttp "stock_dash/internal/platform/http"
	"stock_dash/internal/shared/ratelimiter"
)

// NewTwelveData creates a TwelveDataMarket with its own HTTP client and a
// per-minute rate limiter shared by every endpoint it calls.
func NewTwelveData(cfg twelvedata.Config) *twelvedata.TwelveDataMarket {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, "")
	var limiter ratelimiter.Limiter
	if cfg.RateLimit > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	}
	return twelvedata.NewTwelveDataMarket(cfg, httpClient, limiter)
}

// NewMarket returns the price provider selected by MARKET_PROVIDER, wrapped in
// the Redis read-through cache when rdb is non-nil.
// td is reused when the provider is Twelve Data so the rate limit is shared
// with company lookups.
func NewMarket(cfg *config.Config, td *twelvedata.TwelveDataMarket, rdb *redis.Client) candleusecase.MarketRepository {
	var market candleusecase.MarketRepository
	switch cfg.MarketProvider {
	case config.ProviderYahoo:
		market = yahoo.NewYahooMarket(cfg.Yahoo, infrahttp.NewHTTPClient(cfg.Yahoo.Timeout, ""))
	default:
		market = td
	}

	if rdb == nil {
		slog.Info("market cache disabled", "provider", cfg.MarketProvider)
		return market
	}
	return cache.NewCachingMarketRepository(rdb, cfg.CacheTTL, market, "market:"+cfg.MarketProvider)
}
