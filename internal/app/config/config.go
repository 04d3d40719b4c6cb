// Package config はアプリケーション全体の設定を環境変数から読み込みます。
// 外部APIやDBの詳細設定は各アダプターの LoadConfig が担います。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"stock_dash/internal/platform/db"
	"stock_dash/internal/platform/externalapi/twelvedata"
	"stock_dash/internal/platform/externalapi/yahoo"
	"stock_dash/internal/platform/redis"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	ProviderTwelveData = "twelvedata"
	ProviderYahoo      = "yahoo"

	defaultHTTPPort = 8080
	defaultCacheTTL        = 15 * time.Minute
	defaultCompanyCacheTTL = 24 * time.Hour
)

// Config はサーバー起動に必要な設定一式です。
type Config struct {
	Env            string
	HTTPPort       int
	MarketProvider string
	CacheTTL       time.Duration
	CompanyTTL     time.Duration
	CORSAllowAll   bool
	GeminiEnabled  bool
	GeminiModel    string

	TwelveData twelvedata.Config
	Yahoo      yahoo.Config
	Redis      redis.Config
	DB         db.Config
}

// Addr はリッスンアドレスを返します。
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsDevelopment は開発環境かどうかを返します。
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load は環境変数から設定を組み立てます。
func Load() (*Config, error) {
	port, err := getInt("HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("HTTP_PORT out of range: %d", port)
	}

	ttl, err := getDuration("CACHE_TTL", defaultCacheTTL)
	if err != nil {
		return nil, err
	}

	companyTTL, err := getDuration("COMPANY_CACHE_TTL", defaultCompanyCacheTTL)
	if err != nil {
		return nil, err
	}

	provider := strings.ToLower(getString("MARKET_PROVIDER", ProviderTwelveData))
	if provider != ProviderTwelveData && provider != ProviderYahoo {
		return nil, fmt.Errorf("MARKET_PROVIDER must be %q or %q, got %q", ProviderTwelveData, ProviderYahoo, provider)
	}

	corsAll, err := getBool("CORS_ALLOW_ALL", false)
	if err != nil {
		return nil, err
	}
	gemini, err := getBool("GEMINI_ENABLED", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:            getString("APP_ENV", EnvProduction),
		HTTPPort:       port,
		MarketProvider: provider,
		CacheTTL:       ttl,
		CompanyTTL:     companyTTL,
		CORSAllowAll:   corsAll,
		GeminiEnabled:  gemini,
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		TwelveData:     twelvedata.LoadConfig(),
		Yahoo:          yahoo.LoadConfig(),
		Redis:          redis.LoadConfig(),
		DB:             db.LoadConfigFromEnv(),
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("convert %s value %q to bool: %w", key, value, err)
	}
	return parsed, nil
}

// getDuration は "90s" などの time.Duration 形式か、秒数の整数を受け付けます。
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to duration: %w", key, value, err)
	}
	return parsed, nil
}
