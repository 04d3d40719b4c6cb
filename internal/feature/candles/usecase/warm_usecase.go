package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stock_dash/internal/feature/candles/domain/entity"
)

// WarmRanges is the default prefetch: the full history the price and
// indicator charts request when no dates are chosen.
var WarmRanges = []entity.Range{{}}

// WarmUsecase prefetches daily history through the (cached) market repository
// so the first dashboard request for popular tickers is served from Redis.
type WarmUsecase struct {
	market MarketRepository
	ranges []entity.Range
}

// NewWarmUsecase creates a WarmUsecase. An empty ranges slice uses WarmRanges.
func NewWarmUsecase(market MarketRepository, ranges ...entity.Range) *WarmUsecase {
	if len(ranges) == 0 {
		ranges = WarmRanges
	}
	return &WarmUsecase{market: market, ranges: ranges}
}

// WarmAll fetches every range for every symbol. A failing symbol is logged and
// skipped; the returned error joins all failures. Context cancellation stops
// the run immediately.
func (u *WarmUsecase) WarmAll(ctx context.Context, symbols []string) (int, error) {
	var (
		errs   []error
		warmed int
	)
	for _, raw := range symbols {
		symbol := NormalizeSymbol(raw)
		if symbol == "" {
			continue
		}
		ok := true
		for _, rng := range u.ranges {
			if err := ctx.Err(); err != nil {
				return warmed, err
			}
			if _, err := u.market.GetDailySeries(ctx, symbol, rng); err != nil {
				slog.Warn("failed to warm symbol", "symbol", symbol, "last", rng.Last, "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", symbol, err))
				ok = false
				break
			}
		}
		if ok {
			warmed++
		}
	}
	return warmed, errors.Join(errs...)
}
