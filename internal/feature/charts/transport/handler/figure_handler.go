package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dash/internal/api"
	candleentity "stock_dash/internal/feature/candles/domain/entity"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	"stock_dash/internal/feature/charts/domain/entity"
	"stock_dash/internal/feature/charts/usecase"
)

// FigureHandler はグラフをJSONデータとして返します。
type FigureHandler struct {
	uc ChartsUsecase
}

// NewFigureHandler はFigureHandlerの新しいインスタンスを生成します。
func NewFigureHandler(uc ChartsUsecase) *FigureHandler {
	return &FigureHandler{uc: uc}
}

// Price は GET /api/v1/charts/price/:code を処理します。
func (h *FigureHandler) Price(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	fig, err := h.uc.PriceFigure(c.Request.Context(), c.Param("code"), rng)
	respond(c, fig, err)
}

// Indicators は GET /api/v1/charts/indicators/:code を処理します。
func (h *FigureHandler) Indicators(c *gin.Context) {
	rng, ok := bindRange(c)
	if !ok {
		return
	}
	fig, err := h.uc.IndicatorFigure(c.Request.Context(), c.Param("code"), rng)
	respond(c, fig, err)
}

// Forecast は GET /api/v1/charts/forecast/:code?days=N を処理します。
// days が数値でない・範囲外の場合はいずれも ErrInvalidHorizon (400) です。
func (h *FigureHandler) Forecast(c *gin.Context) {
	var q api.ForecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(usecase.ErrInvalidHorizon)
		return
	}
	fig, err := h.uc.ForecastFigure(c.Request.Context(), c.Param("code"), q.Days)
	respond(c, fig, err)
}

func bindRange(c *gin.Context) (candleentity.Range, bool) {
	start, end, err := api.BindDateRange(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: %w", candleusecase.ErrInvalidRange, err))
		return candleentity.Range{}, false
	}
	return candleentity.Range{Start: start, End: end}, true
}

func respond(c *gin.Context, fig *entity.Figure, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(fig))
}

// ToResponse はFigureをJSONレスポンス形式に変換します。欠損値は null になります。
func ToResponse(fig *entity.Figure) api.FigureResponse {
	x := make([]string, len(fig.X))
	for i, t := range fig.X {
		x[i] = t.Format("2006-01-02")
	}

	series := make([]api.SeriesResponse, 0, len(fig.Series))
	for _, s := range fig.Series {
		values := make([]*float64, len(s.Values))
		for i, v := range s.Values {
			if entity.IsGap(v) {
				continue
			}
			values[i] = &v
		}
		series = append(series, api.SeriesResponse{Name: s.Name, Mode: string(s.Mode), Values: values})
	}

	return api.FigureResponse{Title: fig.Title, Kind: string(fig.Kind), X: x, Series: series}
}
