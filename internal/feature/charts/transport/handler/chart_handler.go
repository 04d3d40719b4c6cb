// Package handler はchartsフィーチャーのHTTPハンドラーを提供します。
// /charts 配下はダッシュボードに埋め込むHTMLページ、/api/v1/charts 配下はJSONを返します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_dash/internal/api"
	candleentity "stock_dash/internal/feature/candles/domain/entity"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	"stock_dash/internal/feature/charts/domain/entity"
	"stock_dash/internal/feature/charts/usecase"
)

const (
	// MessageRetrievalFailed は取得失敗時に利用者へ表示する文言です。
	MessageRetrievalFailed = "Could not retrieve market data. Please try again later."
	// MessageNoHistory は取引履歴がない場合の文言です。
	MessageNoHistory = "No trading history was found for this ticker."
)

// ChartsUsecase はグラフ生成のユースケースインターフェースを定義します。
type ChartsUsecase interface {
	PriceFigure(ctx context.Context, symbol string, rng candleentity.Range) (*entity.Figure, error)
	IndicatorFigure(ctx context.Context, symbol string, rng candleentity.Range) (*entity.Figure, error)
	ForecastFigure(ctx context.Context, symbol string, horizon int) (*entity.Figure, error)
}

// Renderer はFigureをHTMLとして書き出します。
type Renderer interface {
	Render(w io.Writer, fig *entity.Figure) error
}

var fragmentTmpl = template.Must(template.New("fragment").Parse(
	`<!DOCTYPE html><html><head><meta charset="utf-8"></head><body>` +
		`{{if .}}<div class="chart-error" role="alert">{{.}}</div>{{else}}<div class="chart-empty"></div>{{end}}` +
		`</body></html>`,
))

// ChartHandler はダッシュボードに埋め込むグラフページを返します。
type ChartHandler struct {
	uc       ChartsUsecase
	renderer Renderer
}

// NewChartHandler はChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartsUsecase, renderer Renderer) *ChartHandler {
	return &ChartHandler{uc: uc, renderer: renderer}
}

// Price は終値・始値グラフを返します。
//
// エンドポイント例:
// GET /charts/price/AAPL?start_date=2024-01-01&end_date=2024-06-30
func (h *ChartHandler) Price(c *gin.Context) {
	h.rangeFigure(c, h.uc.PriceFigure)
}

// Indicators はEMAグラフを返します。
//
// エンドポイント例:
// GET /charts/indicators/AAPL?start_date=2024-01-01
func (h *ChartHandler) Indicators(c *gin.Context) {
	h.rangeFigure(c, h.uc.IndicatorFigure)
}

// Forecast は予測グラフを返します。
//
// エンドポイント例:
// GET /charts/forecast/AAPL?days=10
func (h *ChartHandler) Forecast(c *gin.Context) {
	code := symbolParam(c)
	if code == "" {
		writeFragment(c, http.StatusOK, "")
		return
	}

	var q api.ForecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeFragment(c, http.StatusBadRequest, usecase.ErrInvalidHorizon.Error())
		return
	}

	fig, err := h.uc.ForecastFigure(c.Request.Context(), code, q.Days)
	h.write(c, code, fig, err)
}

type rangeFigureFunc func(ctx context.Context, symbol string, rng candleentity.Range) (*entity.Figure, error)

func (h *ChartHandler) rangeFigure(c *gin.Context, build rangeFigureFunc) {
	code := symbolParam(c)
	if code == "" {
		writeFragment(c, http.StatusOK, "")
		return
	}

	start, end, err := api.BindDateRange(c.Request.URL.Query())
	if err != nil {
		writeFragment(c, http.StatusBadRequest, fmt.Sprintf("%s: dates must be YYYY-MM-DD", candleusecase.ErrInvalidRange))
		return
	}

	fig, err := build(c.Request.Context(), code, candleentity.Range{Start: start, End: end})
	h.write(c, code, fig, err)
}

func (h *ChartHandler) write(c *gin.Context, code string, fig *entity.Figure, err error) {
	if err != nil {
		status, msg := htmlStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("failed to build chart", "symbol", code, "path", c.Request.URL.Path, "error", err)
		}
		writeFragment(c, status, msg)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, fig); err != nil {
		slog.Error("failed to render chart", "symbol", code, "error", err)
		writeFragment(c, http.StatusInternalServerError, MessageRetrievalFailed)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// htmlStatus はエラーをステータスコードと表示文言に変換します。
func htmlStatus(err error) (int, string) {
	switch {
	case errors.Is(err, candleusecase.ErrEmptyTicker):
		return http.StatusOK, ""
	case errors.Is(err, candleusecase.ErrInvalidRange), errors.Is(err, usecase.ErrInvalidHorizon):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, candleusecase.ErrNoHistory):
		return http.StatusNotFound, MessageNoHistory
	default:
		return http.StatusBadGateway, MessageRetrievalFailed
	}
}

func writeFragment(c *gin.Context, status int, msg string) {
	var buf bytes.Buffer
	if err := fragmentTmpl.Execute(&buf, msg); err != nil {
		slog.Error("failed to render chart fragment", "path", c.Request.URL.Path, "error", err)
		c.String(http.StatusInternalServerError, MessageRetrievalFailed)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func symbolParam(c *gin.Context) string {
	code := c.Param("code")
	if code == "" {
		code = c.Query("code")
	}
	return strings.TrimSpace(code)
}
