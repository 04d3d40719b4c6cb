package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock_dash/internal/feature/candles/domain/entity"
	"stock_dash/internal/feature/candles/usecase"
)

// ErrAPI はモックと期待値の間で共有されるセンチネルエラーです。
var ErrAPI = errors.New("provider error")

// mockMarketRepository はMarketRepositoryインターフェースのモック実装です。
type mockMarketRepository struct {
	GetDailySeriesFunc  func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error)
	GetDailySeriesCalls int
}

// GetDailySeries はGetDailySeriesFuncが設定されていればそれを呼び出し、呼び出し回数を記録します。
func (m *mockMarketRepository) GetDailySeries(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
	m.GetDailySeriesCalls++
	if m.GetDailySeriesFunc != nil {
		return m.GetDailySeriesFunc(ctx, symbol, rng)
	}
	return nil, errors.New("GetDailySeriesFunc is not implemented")
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestCandlesUsecase_GetCandles はGetCandlesの入力検証・エラー変換・正規化をテストします。
func TestCandlesUsecase_GetCandles(t *testing.T) {
	ctx := context.Background()
	rows := []entity.Candle{
		{Time: day(2024, 1, 3), Open: 102, Close: 103},
		{Time: day(2024, 1, 2), Open: 100, Close: 101},
		{Time: day(2024, 1, 3).Add(14 * time.Hour), Open: 104, Close: 105}, // 同一日付の重複
	}

	testCases := []struct {
		name         string
		inputSymbol  string
		inputRange   entity.Range
		mockFunc     func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error)
		expectedErr  error
		expectedCall int
		verify       func(t *testing.T, cs []entity.Candle)
	}{
		{
			name:        "success: rows are sorted, deduplicated and tagged",
			inputSymbol: " aapl ",
			mockFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
				if symbol != "AAPL" {
					t.Errorf("expected normalized symbol AAPL, got %q", symbol)
				}
				return rows, nil
			},
			expectedCall: 1,
			verify: func(t *testing.T, cs []entity.Candle) {
				if len(cs) != 2 {
					t.Fatalf("expected 2 candles, got %d", len(cs))
				}
				if !cs[0].Time.Equal(day(2024, 1, 2)) || !cs[1].Time.Equal(day(2024, 1, 3)) {
					t.Errorf("unexpected order: %v, %v", cs[0].Time, cs[1].Time)
				}
				if cs[1].Close != 105 {
					t.Errorf("duplicate date should keep the last row, got close %v", cs[1].Close)
				}
				if cs[0].Symbol != "AAPL" || cs[0].Interval != usecase.DefaultInterval {
					t.Errorf("unexpected tags: %q %q", cs[0].Symbol, cs[0].Interval)
				}
			},
		},
		{
			name:        "success: last keeps the most recent rows",
			inputSymbol: "AAPL",
			inputRange:  entity.Range{Last: 1},
			mockFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
				return rows, nil
			},
			expectedCall: 1,
			verify: func(t *testing.T, cs []entity.Candle) {
				if len(cs) != 1 || !cs[0].Time.Equal(day(2024, 1, 3)) {
					t.Errorf("expected only 2024-01-03, got %v", cs)
				}
			},
		},
		{
			name:        "success: start only fills end with today",
			inputSymbol: "AAPL",
			inputRange:  entity.Range{Start: day(2024, 1, 3)},
			mockFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
				if !rng.HasEnd() {
					t.Error("expected end date to be filled")
				}
				return rows, nil
			},
			expectedCall: 1,
			verify: func(t *testing.T, cs []entity.Candle) {
				if len(cs) != 1 {
					t.Errorf("rows before start should be dropped, got %d", len(cs))
				}
			},
		},
		{
			name:         "error: empty ticker",
			inputSymbol:  "   ",
			expectedErr:  usecase.ErrEmptyTicker,
			expectedCall: 0,
		},
		{
			name:         "error: start before minimum date",
			inputSymbol:  "AAPL",
			inputRange:   entity.Range{Start: day(1990, 1, 1), End: day(2000, 1, 1)},
			expectedErr:  usecase.ErrInvalidRange,
			expectedCall: 0,
		},
		{
			name:         "error: start after end",
			inputSymbol:  "AAPL",
			inputRange:   entity.Range{Start: day(2024, 2, 1), End: day(2024, 1, 1)},
			expectedErr:  usecase.ErrInvalidRange,
			expectedCall: 0,
		},
		{
			name:         "error: end in the future",
			inputSymbol:  "AAPL",
			inputRange:   entity.Range{End: time.Now().AddDate(0, 0, 3)},
			expectedErr:  usecase.ErrInvalidRange,
			expectedCall: 0,
		},
		{
			name:        "error: provider failure is wrapped",
			inputSymbol: "AAPL",
			mockFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
				return nil, ErrAPI
			},
			expectedErr:  usecase.ErrMarketUnavailable,
			expectedCall: 1,
		},
		{
			name:        "error: unknown symbol passes through",
			inputSymbol: "ZZZZ",
			mockFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
				return nil, usecase.ErrNoHistory
			},
			expectedErr:  usecase.ErrNoHistory,
			expectedCall: 1,
		},
		{
			name:        "error: empty result",
			inputSymbol: "AAPL",
			mockFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
				return []entity.Candle{}, nil
			},
			expectedErr:  usecase.ErrNoHistory,
			expectedCall: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &mockMarketRepository{GetDailySeriesFunc: tc.mockFunc}
			uc := usecase.NewCandlesUsecase(mockRepo)

			cs, err := uc.GetCandles(ctx, tc.inputSymbol, tc.inputRange)

			// センチネル比較によるエラー検証
			if tc.expectedErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected %v, got %v", tc.expectedErr, err)
			}

			if tc.verify != nil {
				tc.verify(t, cs)
			}

			// 呼び出し回数の検証
			if mockRepo.GetDailySeriesCalls != tc.expectedCall {
				t.Errorf("GetDailySeries was called %d times, expected %d", mockRepo.GetDailySeriesCalls, tc.expectedCall)
			}
		})
	}
}

// TestCandlesUsecase_GetCandles_ProviderErrorKeepsCause はラップ後も元のエラーを辿れることを検証します。
func TestCandlesUsecase_GetCandles_ProviderErrorKeepsCause(t *testing.T) {
	uc := usecase.NewCandlesUsecase(&mockMarketRepository{
		GetDailySeriesFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
			return nil, ErrAPI
		},
	})

	_, err := uc.GetCandles(context.Background(), "AAPL", entity.Range{})
	if !errors.Is(err, ErrAPI) {
		t.Errorf("expected wrapped cause %v, got %v", ErrAPI, err)
	}
}

// TestCandlesUsecase_GetCandles_SameDomain は同じ入力で同じ日付軸が得られることを検証します。
func TestCandlesUsecase_GetCandles_SameDomain(t *testing.T) {
	repo := &mockMarketRepository{
		GetDailySeriesFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
			return []entity.Candle{
				{Time: day(2024, 1, 4)}, {Time: day(2024, 1, 2)}, {Time: day(2024, 1, 3)},
			}, nil
		},
	}
	uc := usecase.NewCandlesUsecase(repo)
	rng := entity.Range{Start: day(2024, 1, 1), End: day(2024, 1, 31)}

	first, err := uc.GetCandles(context.Background(), "AAPL", rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.GetCandles(context.Background(), "AAPL", rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Time.Equal(second[i].Time) {
			t.Errorf("index %d: %v vs %v", i, first[i].Time, second[i].Time)
		}
	}
}
