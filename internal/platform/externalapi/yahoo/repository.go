package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stock_dash/internal/feature/candles/domain/entity"
	"stock_dash/internal/feature/candles/usecase"
)

// YahooMarket はYahoo Financeのchart APIから日足を取得するMarketRepository実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は新しいYahooMarketを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// GetDailySeries は日足データを取得します。開始日がなければ直近件数に応じた期間を指定します。
func (y *YahooMarket) GetDailySeries(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("events", "history")
	if rng.HasStart() {
		end := rng.End
		if !rng.HasEnd() {
			end = time.Now()
		}
		q.Set("period1", strconv.FormatInt(rng.Start.Unix(), 10))
		// period2 は排他的なため翌日を指定
		q.Set("period2", strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10))
	} else {
		q.Set("range", rangeFor(rng.Last))
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		strings.TrimRight(y.cfg.BaseURL, "/"), url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	// 不明な銘柄は404とエラーボディで返る
	var body chartResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)
	if body.Chart.Error != nil {
		if body.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: yahoo: %s", usecase.ErrNoHistory, body.Chart.Error.Description)
		}
		return nil, fmt.Errorf("yahoo api error: %s", body.Chart.Error.Description)
	}
	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: yahoo: %s", usecase.ErrNoHistory, symbol)
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]entity.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == nil {
			continue // 休場日などの null バーは除外
		}
		var vol int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		candles = append(candles, entity.Candle{
			Symbol:   symbol,
			Interval: "1day",
			Time:     time.Unix(ts, 0).UTC(),
			Open:     valueOr(at(quote.Open, i), *c),
			High:     valueOr(at(quote.High, i), *c),
			Low:      valueOr(at(quote.Low, i), *c),
			Close:    *c,
			Volume:   vol,
		})
	}
	return candles, nil
}

// rangeFor は直近件数を祝日の多い時期でも満たすrangeを返します。0は全期間です。
// 余分な行は candles usecase の normalize が切り詰めます。
func rangeFor(last int) string {
	switch {
	case last <= 0:
		return "max"
	case last <= 15:
		return "1mo"
	case last <= 120:
		return "6mo"
	case last <= 250:
		return "1y"
	case last <= 500:
		return "2y"
	case last <= 1250:
		return "5y"
	default:
		return "max"
	}
}

func at(vs []*float64, i int) *float64 {
	if i >= len(vs) {
		return nil
	}
	return vs[i]
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
