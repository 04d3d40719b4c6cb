package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_dash/internal/app/config"
	"stock_dash/internal/app/di"
	"stock_dash/internal/app/router"
	candlehandler "stock_dash/internal/feature/candles/transport/handler"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	"stock_dash/internal/feature/charts/adapters/echarts"
	chartshandler "stock_dash/internal/feature/charts/transport/handler"
	chartsusecase "stock_dash/internal/feature/charts/usecase"
	companyhandler "stock_dash/internal/feature/company/transport/handler"
	companyusecase "stock_dash/internal/feature/company/usecase"
	dashboardhandler "stock_dash/internal/feature/dashboard/transport/handler"
	symbollistadapters "stock_dash/internal/feature/symbollist/adapters"
	symbollisthandler "stock_dash/internal/feature/symbollist/transport/handler"
	symbollistusecase "stock_dash/internal/feature/symbollist/usecase"
	infradb "stock_dash/internal/platform/db"
	platformhandler "stock_dash/internal/platform/http/handler"
	infraredis "stock_dash/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TwelveData.TwelveDataAPIKey == "" {
		slog.Warn("TWELVE_DATA_API_KEY is not set. Company lookups and Twelve Data prices will fail.")
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// DB（任意、ティッカー候補のみ）
	var db *gorm.DB
	if cfg.DB.Driver != "" {
		if tmp, err := infradb.Open(cfg.DB); err != nil {
			slog.Warn("database unavailable. Ticker suggestions are disabled.", "error", err)
		} else {
			db = tmp
		}
	}

	// Repository
	td := di.NewTwelveData(cfg.TwelveData)
	market := di.NewMarket(cfg, td, rdb)

	// Usecase
	candlesUC := candleusecase.NewCandlesUsecase(market)
	companyUC := companyusecase.NewCompanyUsecase(di.NewCompanyRepository(cfg, td, rdb), di.NewDescriber(ctx, cfg))
	chartsUC := chartsusecase.NewChartsUsecase(candlesUC, nil)

	// Handler
	handlers := router.Handlers{
		Candles: candlehandler.NewCandlesHandler(candlesUC),
		Company: companyhandler.NewCompanyHandler(companyUC),
		Charts:  chartshandler.NewChartHandler(chartsUC, echarts.NewRenderer()),
		Figures: chartshandler.NewFigureHandler(chartsUC),
		Health:  platformhandler.Health(healthChecks(rdb, db)...),
	}
	if db != nil {
		symbolUC := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(db))
		handlers.Symbols = symbollisthandler.NewSymbolHandler(symbolUC)
		handlers.Dashboard = dashboardhandler.NewDashboardHandler(companyUC, symbolUC)
	} else {
		handlers.Dashboard = dashboardhandler.NewDashboardHandler(companyUC, nil)
	}

	// ルータ生成
	engine := router.NewRouter(handlers, router.Options{CORSAllowAll: cfg.CORSAllowAll})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env, "provider", cfg.MarketProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// setupLogger は開発環境ではテキスト、それ以外ではJSON形式のロガーを設定します。
func setupLogger(cfg *config.Config) {
	var h slog.Handler
	if cfg.IsDevelopment() {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

func healthChecks(rdb *redisv9.Client, db *gorm.DB) []platformhandler.Check {
	var checks []platformhandler.Check
	if rdb != nil {
		checks = append(checks, platformhandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	if db != nil {
		checks = append(checks, platformhandler.Check{Name: "db", Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}})
	}
	return checks
}
