package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	candleentity "stock_dash/internal/feature/candles/domain/entity"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	companyentity "stock_dash/internal/feature/company/domain/entity"
	companyusecase "stock_dash/internal/feature/company/usecase"
	"stock_dash/internal/platform/externalapi/twelvedata/dto"
	"stock_dash/internal/shared/ratelimiter"
)

const (
	// MaxOutputSize はtime_seriesが1回で返せる最大件数です。
	MaxOutputSize = 5000
	// MaxHistoryPages は全期間取得で遡るページ数の上限です。
	MaxHistoryPages = 4
)

// TwelveDataMarket はTwelve Data外部APIから株価データと企業情報を取得するリポジトリ実装です。
type TwelveDataMarket struct {
	cfg      Config
	client   *http.Client
	limiter  ratelimiter.Limiter
	pageSize int
}

// TwelveDataMarketがMarketRepositoryとCompanyRepositoryを実装していることをコンパイル時に検証します。
var (
	_ candleusecase.MarketRepository   = (*TwelveDataMarket)(nil)
	_ companyusecase.CompanyRepository = (*TwelveDataMarket)(nil)
)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
// limiter が nil の場合はレート制限を行いません。
func NewTwelveDataMarket(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *TwelveDataMarket {
	if limiter == nil {
		limiter = ratelimiter.Unlimited()
	}
	return &TwelveDataMarket{cfg: cfg, client: client, limiter: limiter, pageSize: MaxOutputSize}
}

// GetDailySeries はTwelve Data APIから日足データを取得し、
// entity.Candleのスライスとして返します。
// 開始日も件数も指定がない場合は1回の上限件数を超える分を end_date で遡って取得し、
// MinDate に届くか、ページが上限件数に満たなくなった時点で止めます。
func (t *TwelveDataMarket) GetDailySeries(ctx context.Context, symbol string, rng candleentity.Range) ([]candleentity.Candle, error) {
	if rng.HasStart() || rng.Last > 0 {
		return t.timeSeries(ctx, symbol, rng)
	}

	var all []candleentity.Candle
	page := rng
	for i := 0; i < MaxHistoryPages; i++ {
		cs, err := t.timeSeries(ctx, symbol, page)
		if err != nil {
			// 2ページ目以降の「データなし」は履歴の終端
			if i > 0 && errors.Is(err, candleusecase.ErrNoHistory) {
				break
			}
			return nil, err
		}
		all = append(cs, all...)
		if len(cs) < t.pageSize {
			break
		}
		earliest := cs[0].Time
		for _, c := range cs[1:] {
			if c.Time.Before(earliest) {
				earliest = c.Time
			}
		}
		if !earliest.After(candleusecase.MinDate) {
			break
		}
		page.End = earliest.AddDate(0, 0, -1)
	}
	return all, nil
}

func (t *TwelveDataMarket) timeSeries(ctx context.Context, symbol string, rng candleentity.Range) ([]candleentity.Candle, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("order", "asc")

	outputsize := t.pageSize
	if rng.Last > 0 && rng.Last < t.pageSize {
		outputsize = rng.Last
	}
	q.Set("outputsize", strconv.Itoa(outputsize))
	if rng.HasStart() {
		q.Set("start_date", rng.Start.Format(time.DateOnly))
	}
	if rng.HasEnd() {
		// end_date は排他的なため翌日を指定
		q.Set("end_date", rng.End.AddDate(0, 0, 1).Format(time.DateOnly))
	}

	var body dto.TimeSeriesResponse
	if err := t.get(ctx, "time_series", q, &body); err != nil {
		return nil, err
	}
	if err := checkStatus(body.ErrorFields, candleusecase.ErrNoHistory); err != nil {
		return nil, err
	}

	candles := make([]candleentity.Candle, 0, len(body.Values))
	for _, v := range body.Values {

		// タイムスタンプをパース
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		o, err := strconv.ParseFloat(v.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open %q: %w", v.Open, err)
		}
		h, err := strconv.ParseFloat(v.High, 64)
		if err != nil {
			return nil, fmt.Errorf("parse high %q: %w", v.High, err)
		}
		l, err := strconv.ParseFloat(v.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("parse low %q: %w", v.Low, err)
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		// 指数などは出来高が空
		var vol64 int64
		if v.Volume != "" {
			vol64, err = strconv.ParseInt(v.Volume, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse volume %q: %w", v.Volume, err)
			}
		}

		candles = append(candles, candleentity.Candle{
			Symbol:   symbol,
			Interval: "1day",
			Time:     tm,
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			Volume:   vol64,
		})
	}
	return candles, nil
}

// GetProfile はprofileエンドポイントから企業プロフィールを取得します。
func (t *TwelveDataMarket) GetProfile(ctx context.Context, symbol string) (*companyentity.Company, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var body dto.ProfileResponse
	if err := t.get(ctx, "profile", q, &body); err != nil {
		return nil, err
	}
	if err := checkStatus(body.ErrorFields, companyusecase.ErrCompanyNotFound); err != nil {
		return nil, err
	}
	return &companyentity.Company{
		Symbol:      symbol,
		Name:        body.Name,
		Description: body.Description,
		Exchange:    body.Exchange,
		Sector:      body.Sector,
		Website:     body.Website,
	}, nil
}

// GetLogoURL はlogoエンドポイントからロゴ画像のURLを取得します。
func (t *TwelveDataMarket) GetLogoURL(ctx context.Context, symbol string) (string, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var body dto.LogoResponse
	if err := t.get(ctx, "logo", q, &body); err != nil {
		return "", err
	}
	if err := checkStatus(body.ErrorFields, companyusecase.ErrCompanyNotFound); err != nil {
		return "", err
	}
	return body.URL, nil
}

// get はエンドポイントにGETリクエストを送り、JSONレスポンスをoutにデコードします。
func (t *TwelveDataMarket) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	// URLを生成
	u := fmt.Sprintf("%s/%s?%s", strings.TrimRight(t.cfg.BaseURL, "/"), endpoint, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	// リクエストを実行
	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("twelvedata decode %s: %w", endpoint, err)
	}
	return nil
}

// checkStatus はAPIレベルのエラーを変換します。400/404は銘柄不明として notFound でラップします。
func checkStatus(f dto.ErrorFields, notFound error) error {
	if f.Status != "error" {
		return nil
	}
	if f.Code == http.StatusBadRequest || f.Code == http.StatusNotFound {
		return fmt.Errorf("%w: twelvedata: %s", notFound, f.Message)
	}
	return fmt.Errorf("twelvedata: %s", f.Message)
}
