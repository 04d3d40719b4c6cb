// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dash/internal/feature/candles/domain/entity"
	"stock_dash/internal/feature/candles/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying provider client.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	expiry    func() time.Duration
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 15 minutes. If namespace is empty, it uses "market".
// Entries never outlive the next US market close.
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "market"
	}
	c := &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
	c.expiry = func() time.Duration {
		return min(c.ttl, TimeUntilNextClose(time.Now()))
	}
	return c
}

// GetDailySeries retrieves daily candles, checking cache first then falling back to the provider.
func (c *CachingMarketRepository) GetDailySeries(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetDailySeries(ctx, symbol, rng)
	}

	key := c.cacheKey(symbol, rng)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to provider
	out, err := c.inner.GetDailySeries(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort, empty results are not cached)
	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.expiry()).Err()
		}
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingMarketRepository) cacheKey(symbol string, rng entity.Range) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		dateKey(rng.Start),
		dateKey(rng.End),
		rng.Last,
	)
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
