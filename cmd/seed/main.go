// Command seed はYAMLファイルの銘柄をティッカー候補テーブルに登録します。
//
//	go run ./cmd/seed -file configs/symbols.yaml
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	symbollistadapters "stock_dash/internal/feature/symbollist/adapters"
	symbollistusecase "stock_dash/internal/feature/symbollist/usecase"
	infradb "stock_dash/internal/platform/db"
)

func main() {
	file := flag.String("file", "configs/symbols.yaml", "path to the symbols YAML file")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := infradb.LoadConfigFromEnv()
	if cfg.Driver == "" {
		cfg.Driver = infradb.DriverSQLite
	}
	cfg.Migrate = true

	db, err := infradb.Open(cfg)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}

	symbols, err := symbollistadapters.LoadSymbolsFile(*file)
	if err != nil {
		slog.Error("failed to load symbols", "file", *file, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uc := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(db))
	n, err := uc.Seed(ctx, symbols)
	if err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed completed", "symbols", n, "file", *file)
}
