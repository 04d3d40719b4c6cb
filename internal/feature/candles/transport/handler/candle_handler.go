// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dash/internal/api"
	"stock_dash/internal/feature/candles/domain/entity"
	"stock_dash/internal/feature/candles/usecase"
)

// CandlesUsecase はローソク足データ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は銘柄コードと日付範囲を受け取り、日足データをJSONで返します。
//
// エンドポイント例:
// GET /api/v1/candles/:code?start_date=2024-01-01&end_date=2024-06-30
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	start, end, err := api.BindDateRange(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: %w", usecase.ErrInvalidRange, err))
		return
	}

	candles, err := h.uc.GetCandles(c.Request.Context(), c.Param("code"), entity.Range{Start: start, End: end})
	if err != nil {
		_ = c.Error(err)
		return
	}

	// データをフォーマット
	out := make([]api.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, api.CandleResponse{
			Time:   x.Time.UTC().Format("2006-01-02"),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}

	c.JSON(http.StatusOK, out)
}
