// Package router はHTTPルーティングを組み立てます。
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	candlehandler "stock_dash/internal/feature/candles/transport/handler"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	chartshandler "stock_dash/internal/feature/charts/transport/handler"
	chartsusecase "stock_dash/internal/feature/charts/usecase"
	companyhandler "stock_dash/internal/feature/company/transport/handler"
	companyusecase "stock_dash/internal/feature/company/usecase"
	dashboardhandler "stock_dash/internal/feature/dashboard/transport/handler"
	symbollisthandler "stock_dash/internal/feature/symbollist/transport/handler"
	"stock_dash/internal/platform/http/middleware"
)

// Handlers はルーターに登録するハンドラー一式です。
// Symbols が nil の場合 /api/v1/symbols は登録しません。
type Handlers struct {
	Dashboard *dashboardhandler.DashboardHandler
	Candles   *candlehandler.CandlesHandler
	Company   *companyhandler.CompanyHandler
	Charts    *chartshandler.ChartHandler
	Figures   *chartshandler.FigureHandler
	Symbols   *symbollisthandler.SymbolHandler
	Health    gin.HandlerFunc
}

// Options はルーター全体の挙動を切り替えます。
type Options struct {
	CORSAllowAll bool
}

// APIErrorRules はJSON APIで返すセンチネルエラーとステータスの対応です。
func APIErrorRules() []middleware.StatusRule {
	return []middleware.StatusRule{
		{Err: candleusecase.ErrEmptyTicker, Status: http.StatusBadRequest},
		{Err: candleusecase.ErrInvalidRange, Status: http.StatusBadRequest},
		{Err: chartsusecase.ErrInvalidHorizon, Status: http.StatusBadRequest},
		{Err: companyusecase.ErrEmptyTicker, Status: http.StatusBadRequest},
		{Err: candleusecase.ErrNoHistory, Status: http.StatusNotFound},
		{Err: companyusecase.ErrCompanyNotFound, Status: http.StatusNotFound},
		{Err: candleusecase.ErrMarketUnavailable, Status: http.StatusBadGateway, Message: "failed to retrieve market data"},
		{Err: companyusecase.ErrProfileUnavailable, Status: http.StatusBadGateway, Message: "failed to retrieve company profile"},
		{Err: chartsusecase.ErrForecastFailed, Status: http.StatusInternalServerError, Message: "forecast failed"},
	}
}

// NewRouter はダッシュボード、埋め込みグラフ、JSON APIのルートを登録したエンジンを返します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// ブラウザ以外のクライアントからAPIを使う場合のみ有効化
	if opts.CORSAllowAll {
		r.Use(cors.Default())
	}

	// 導通確認用
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)

	// ダッシュボード
	r.GET("/", h.Dashboard.Show)

	// ダッシュボードに埋め込むグラフ（HTML）
	charts := r.Group("/charts")
	{
		charts.GET("/price", h.Charts.Price)
		charts.GET("/price/:code", h.Charts.Price)
		charts.GET("/indicators", h.Charts.Indicators)
		charts.GET("/indicators/:code", h.Charts.Indicators)
		charts.GET("/forecast", h.Charts.Forecast)
		charts.GET("/forecast/:code", h.Charts.Forecast)
	}

	// JSON API
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Error(APIErrorRules()...))
	{
		v1.GET("/candles/:code", h.Candles.GetCandlesHandler)
		v1.GET("/company/:code", h.Company.GetCompany)
		v1.GET("/charts/price/:code", h.Figures.Price)
		v1.GET("/charts/indicators/:code", h.Figures.Indicators)
		v1.GET("/charts/forecast/:code", h.Figures.Forecast)
		if h.Symbols != nil {
			v1.GET("/symbols", h.Symbols.List)
		}
	}

	return r
}
