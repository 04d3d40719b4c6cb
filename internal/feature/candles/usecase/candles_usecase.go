// Package usecase はローソク足データ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"stock_dash/internal/feature/candles/domain/entity"
)

const (
	// DefaultInterval はダッシュボードで扱う唯一の時間足です。
	DefaultInterval = "1day"
)

// MinDate は日付範囲で選択できる最も古い日付です。
var MinDate = time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)

// MarketRepository は日足データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetDailySeries は指定範囲の日足を返します。範囲外や重複を含んでいても構いません。
	GetDailySeries(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error)
}

// candlesUsecase はローソク足データ取得のユースケースを定義します。
type candlesUsecase struct {
	market MarketRepository
}

// NewCandlesUsecase はcandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(market MarketRepository) *candlesUsecase {
	return &candlesUsecase{market: market}
}

// NormalizeSymbol は入力されたティッカーを前後の空白を除いて大文字化します。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetCandles は指定された銘柄の日足を日付昇順・日付重複なしで返します。
func (cu *candlesUsecase) GetCandles(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptyTicker
	}
	rng, err := validateRange(rng, time.Now())
	if err != nil {
		return nil, err
	}

	cs, err := cu.market.GetDailySeries(ctx, symbol, rng)
	if err != nil {
		if errors.Is(err, ErrNoHistory) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMarketUnavailable, err)
	}

	out := normalize(symbol, cs, rng)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHistory, symbol)
	}
	return out, nil
}

// validateRange は日付範囲を検証し、未指定の終了日を今日で補います。
func validateRange(rng entity.Range, now time.Time) (entity.Range, error) {
	today := truncateDay(now)
	if rng.Last < 0 {
		return rng, fmt.Errorf("%w: last must not be negative", ErrInvalidRange)
	}
	if rng.HasStart() {
		rng.Start = truncateDay(rng.Start)
		if rng.Start.Before(MinDate) {
			return rng, fmt.Errorf("%w: start date must be on or after %s", ErrInvalidRange, MinDate.Format(time.DateOnly))
		}
		// 開始日のみ指定された場合、終了日は今日
		if !rng.HasEnd() {
			rng.End = today
		}
	}
	if rng.HasEnd() {
		rng.End = truncateDay(rng.End)
		if rng.End.After(today) {
			return rng, fmt.Errorf("%w: end date must not be in the future", ErrInvalidRange)
		}
	}
	if rng.HasStart() && rng.Start.After(rng.End) {
		return rng, fmt.Errorf("%w: start date is after end date", ErrInvalidRange)
	}
	return rng, nil
}

// normalize は日付昇順に並べ替え、同一日付は後勝ちで1件にまとめ、範囲外を除外します。
func normalize(symbol string, cs []entity.Candle, rng entity.Range) []entity.Candle {
	byDay := make(map[time.Time]entity.Candle, len(cs))
	for _, c := range cs {
		day := truncateDay(c.Time)
		if rng.HasStart() && day.Before(rng.Start) {
			continue
		}
		if rng.HasEnd() && day.After(rng.End) {
			continue
		}
		c.Time = day
		c.Symbol = symbol
		c.Interval = DefaultInterval
		byDay[day] = c
	}

	out := make([]entity.Candle, 0, len(byDay))
	for _, c := range byDay {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	if rng.Last > 0 && len(out) > rng.Last {
		out = out[len(out)-rng.Last:]
	}
	return out
}

// truncateDay は時刻を切り捨てUTCの日付にします。
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
