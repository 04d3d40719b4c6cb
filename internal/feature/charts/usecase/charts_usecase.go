// Package usecase は日足データから価格・指標・予測グラフを組み立てます。
package usecase

import (
	"context"
	"fmt"
	"time"

	candleentity "stock_dash/internal/feature/candles/domain/entity"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	"stock_dash/internal/feature/charts/domain/entity"
	"stock_dash/internal/shared/indicator"
	"stock_dash/internal/shared/regression"
)

const (
	PriceTitle     = "Closing and Opening Price vs Date"
	IndicatorTitle = "Exponential Moving Average vs Date"
	// ForecastTitleFormat は予測グラフのタイトルで、%d に予測日数が入ります。
	ForecastTitleFormat = "Predicted Close Price of next %d days"

	// IndicatorSeriesName はEMA系列の名前です。
	IndicatorSeriesName = "EWA_20"

	// ForecastLookback は予測モデルの学習に使う直近の日足本数です。
	ForecastLookback = 60
	// MaxHorizon は予測日数の上限です。
	MaxHorizon = 365
)

// CandlesReader は日足データを取得するインターフェースです。
// 入力検証とエラー変換は candles ユースケースが担います。
type CandlesReader interface {
	GetCandles(ctx context.Context, symbol string, rng candleentity.Range) ([]candleentity.Candle, error)
}

// Regressor は1変数の回帰モデルを学習します。
type Regressor interface {
	Fit(x, y []float64) (*regression.Model, error)
}

type chartsUsecase struct {
	candles   CandlesReader
	regressor Regressor
}

// NewChartsUsecase はchartsUsecaseの新しいインスタンスを生成します。
// regressor が nil の場合はデフォルト設定のSVRを使用します。
func NewChartsUsecase(candles CandlesReader, regressor Regressor) *chartsUsecase {
	if regressor == nil {
		regressor = regression.NewSVR()
	}
	return &chartsUsecase{candles: candles, regressor: regressor}
}

// PriceFigure は終値と始値の折れ線グラフを返します。
func (u *chartsUsecase) PriceFigure(ctx context.Context, symbol string, rng candleentity.Range) (*entity.Figure, error) {
	cs, err := u.candles.GetCandles(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	x := make([]time.Time, len(cs))
	closes := make([]float64, len(cs))
	opens := make([]float64, len(cs))
	for i, c := range cs {
		x[i] = c.Time
		closes[i] = c.Close
		opens[i] = c.Open
	}

	return &entity.Figure{
		Title: PriceTitle,
		Kind:  entity.KindLine,
		X:     x,
		Series: []entity.Series{
			{Name: "Close", Mode: entity.ModeLines, Values: closes},
			{Name: "Open", Mode: entity.ModeLines, Values: opens},
		},
	}, nil
}

// IndicatorFigure は終値の20日指数移動平均を線とマーカーで返します。
func (u *chartsUsecase) IndicatorFigure(ctx context.Context, symbol string, rng candleentity.Range) (*entity.Figure, error) {
	cs, err := u.candles.GetCandles(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	x, closes := closeSeries(cs)
	ema, err := indicator.EMA(closes, indicator.DefaultEMASpan)
	if err != nil {
		return nil, err
	}

	return &entity.Figure{
		Title: IndicatorTitle,
		Kind:  entity.KindScatter,
		X:     x,
		Series: []entity.Series{
			{Name: IndicatorSeriesName, Mode: entity.ModeLinesMarkers, Values: ema},
		},
	}, nil
}

// ForecastFigure は直近の終値でSVRを学習し、次の horizon 営業日の終値を予測します。
// 結果には実績の "Actual" と、ちょうど horizon 点の "Predicted" が含まれます。
func (u *chartsUsecase) ForecastFigure(ctx context.Context, symbol string, horizon int) (*entity.Figure, error) {
	if horizon < 1 || horizon > MaxHorizon {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizon)
	}

	cs, err := u.candles.GetCandles(ctx, symbol, candleentity.Range{Last: ForecastLookback})
	if err != nil {
		return nil, err
	}

	dates, closes := closeSeries(cs)
	n := len(closes)
	if n == 0 {
		return nil, candleusecase.ErrNoHistory
	}
	index := make([]float64, n)
	for i := range index {
		index[i] = float64(i)
	}

	model, err := u.regressor.Fit(index, closes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrForecastFailed, err)
	}

	future := make([]float64, horizon)
	for i := range future {
		future[i] = float64(n + i)
	}
	predicted := model.PredictAll(future)

	x := append(dates, NextBusinessDays(dates[n-1], horizon)...)
	actual := make([]float64, n+horizon)
	forecast := make([]float64, n+horizon)
	for i := range actual {
		if i < n {
			actual[i] = closes[i]
			forecast[i] = entity.Gap()
			continue
		}
		actual[i] = entity.Gap()
		forecast[i] = predicted[i-n]
	}

	return &entity.Figure{
		Title: fmt.Sprintf(ForecastTitleFormat, horizon),
		Kind:  entity.KindLine,
		X:     x,
		Series: []entity.Series{
			{Name: "Actual", Mode: entity.ModeLines, Values: actual},
			{Name: "Predicted", Mode: entity.ModeLinesMarkers, Values: forecast},
		},
	}, nil
}

// NextBusinessDays は after の翌日から土日を除いた n 日分の日付を返します。
// 祝日は考慮しません。
func NextBusinessDays(after time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	d := after
	for len(out) < n {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		out = append(out, d)
	}
	return out
}

func closeSeries(cs []candleentity.Candle) ([]time.Time, []float64) {
	x := make([]time.Time, len(cs))
	closes := make([]float64, len(cs))
	for i, c := range cs {
		x[i] = c.Time
		closes[i] = c.Close
	}
	return x, closes
}
