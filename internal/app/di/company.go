package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"stock_dash/internal/app/config"
	"stock_dash/internal/feature/company/adapters/gemini"
	companyusecase "stock_dash/internal/feature/company/usecase"
	"stock_dash/internal/platform/cache"
	"stock_dash/internal/platform/externalapi/twelvedata"
)

// NewCompanyRepository wraps td in the Redis profile cache when rdb is non-nil.
// Profiles and logos are always read from Twelve Data.
func NewCompanyRepository(cfg *config.Config, td *twelvedata.TwelveDataMarket, rdb *redis.Client) companyusecase.CompanyRepository {
	if rdb == nil {
		return td
	}
	return cache.NewCachingCompanyRepository(rdb, cfg.CompanyTTL, td, "company:"+config.ProviderTwelveData)
}

// NewDescriber returns the Gemini describer when GEMINI_ENABLED is set.
// A client that cannot be created is logged and treated as disabled.
func NewDescriber(ctx context.Context, cfg *config.Config) companyusecase.Describer {
	if !cfg.GeminiEnabled {
		return nil
	}
	d, err := gemini.NewGeminiDescriber(ctx, cfg.GeminiModel)
	if err != nil {
		slog.Warn("Gemini unavailable. Company descriptions come from the provider only.", "error", err)
		return nil
	}
	return d
}
