package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dash/internal/feature/candles/domain/entity"
	"stock_dash/internal/feature/candles/usecase"
)

func TestWarmUsecase_WarmAll(t *testing.T) {
	t.Parallel()

	var calls []string
	repo := &mockMarketRepository{
		GetDailySeriesFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
			calls = append(calls, symbol)
			if symbol == "ZZZZ" {
				return nil, usecase.ErrNoHistory
			}
			return []entity.Candle{{Symbol: symbol, Close: 1}}, nil
		},
	}
	uc := usecase.NewWarmUsecase(repo, entity.Range{}, entity.Range{Last: 60})

	n, err := uc.WarmAll(context.Background(), []string{"aapl", " ", "ZZZZ", "MSFT"})

	assert.Equal(t, 2, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrNoHistory)
	assert.Contains(t, err.Error(), "ZZZZ")
	// ZZZZ は最初の範囲で失敗するため2つ目の範囲は取得しない
	assert.Equal(t, []string{"AAPL", "AAPL", "ZZZZ", "MSFT", "MSFT"}, calls)
}

func TestWarmUsecase_WarmAll_DefaultRanges(t *testing.T) {
	t.Parallel()

	repo := &mockMarketRepository{
		GetDailySeriesFunc: func(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
			assert.Equal(t, entity.Range{}, rng)
			return nil, nil
		},
	}

	n, err := usecase.NewWarmUsecase(repo).WarmAll(context.Background(), []string{"AAPL"})

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, repo.GetDailySeriesCalls)
}

func TestWarmUsecase_WarmAll_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &mockMarketRepository{}
	n, err := usecase.NewWarmUsecase(repo).WarmAll(ctx, []string{"AAPL", "MSFT"})

	assert.Zero(t, n)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, repo.GetDailySeriesCalls)
}
