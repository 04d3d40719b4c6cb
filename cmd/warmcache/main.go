// Command warmcache はティッカー候補テーブルの銘柄について日足データを事前取得し、
// Redisキャッシュに載せます。cronなど外部のスケジューラーから実行する想定です。
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock_dash/internal/app/config"
	"stock_dash/internal/app/di"
	candleentity "stock_dash/internal/feature/candles/domain/entity"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	chartsusecase "stock_dash/internal/feature/charts/usecase"
	symbollistadapters "stock_dash/internal/feature/symbollist/adapters"
	symbollistusecase "stock_dash/internal/feature/symbollist/usecase"
	infradb "stock_dash/internal/platform/db"
	infraredis "stock_dash/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.Redis.Enabled() || cfg.DB.Driver == "" {
		slog.Error("warmcache needs REDIS_HOST and DB_DRIVER")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", "addr", cfg.Redis.Addr(), "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	db, err := infradb.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	symbols, err := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(db)).ListActiveSymbols(ctx)
	if err != nil {
		slog.Error("failed to load symbols", "error", err)
		os.Exit(1)
	}
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.Code)
	}

	market := di.NewMarket(cfg, di.NewTwelveData(cfg.TwelveData), rdb)
	uc := candleusecase.NewWarmUsecase(market,
		candleentity.Range{},
		candleentity.Range{Last: chartsusecase.ForecastLookback},
	)

	n, err := uc.WarmAll(ctx, codes)
	if err != nil {
		slog.Warn("some symbols were not warmed", "warmed", n, "total", len(codes), "error", err)
		return
	}
	slog.Info("warm ok", "warmed", n)
}
