// Package handler はダッシュボード画面（GET /）を描画します。
package handler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock_dash/internal/api"
	candleusecase "stock_dash/internal/feature/candles/usecase"
	chartsusecase "stock_dash/internal/feature/charts/usecase"
	companyentity "stock_dash/internal/feature/company/domain/entity"
	companyhandler "stock_dash/internal/feature/company/transport/handler"
	companyusecase "stock_dash/internal/feature/company/usecase"
	symbolentity "stock_dash/internal/feature/symbollist/domain/entity"
	symbolhandler "stock_dash/internal/feature/symbollist/transport/handler"
	"stock_dash/internal/feature/symbollist/transport/http/dto"
)

// 表示領域の種類。ボタンの value と hidden の panel 値に使います。
const (
	PanelPrice      = "price"
	PanelIndicators = "indicators"
	PanelForecast   = "forecast"

	showSubmit = "submit"
)

var panelOrder = []string{PanelPrice, PanelIndicators, PanelForecast}

var panelTitles = map[string]string{
	PanelPrice:      "Stock Price",
	PanelIndicators: "Indicators",
	PanelForecast:   "Forecast",
}

// panelSections は各領域を囲む section の id です。
var panelSections = map[string]string{
	PanelPrice:      "graphs-content",
	PanelIndicators: "main-content",
	PanelForecast:   "forecast-content",
}

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// CompanyUsecase はヘッダー表示に必要な企業情報ユースケースです。
type CompanyUsecase interface {
	Intro() companyentity.Company
	Lookup(ctx context.Context, symbol string) (*companyentity.Company, error)
}

// SymbolLister はティッカー候補の一覧を返します。
type SymbolLister interface {
	ListActiveSymbols(ctx context.Context) ([]symbolentity.Symbol, error)
}

// Panel は埋め込むグラフ領域です。
// グラフのボタンは Target の iframe だけを読み込み直し、ページ全体は再描画しません。
type Panel struct {
	Kind    string
	Title   string
	Section string
	Target  string // iframe の name。ボタンの formtarget と一致させる
	Action  string // ボタンの formaction
	Src     string // 初期表示。閉じた領域は空のプレースホルダー
	Open    bool
}

// Page はテンプレートに渡す画面の状態です。
type Page struct {
	Code         string
	StartDate    string
	EndDate      string
	Days         string
	MinDate      string
	MaxDate      string
	MaxHorizon   int
	Company      api.CompanyResponse
	CompanyError string
	Symbols      []dto.SymbolItem
	Panels       []Panel
}

// DashboardHandler はダッシュボード画面を処理します。
type DashboardHandler struct {
	company CompanyUsecase
	symbols SymbolLister // nil の場合は候補を表示しない
	now     func() time.Time
}

// NewDashboardHandler はDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(company CompanyUsecase, symbols SymbolLister) *DashboardHandler {
	return &DashboardHandler{company: company, symbols: symbols, now: time.Now}
}

// Show はヘッダーとグラフ領域を描画します。企業情報の取得はこのページの読み込み時だけです。
// フォームの Submit はこのページを読み込み直して領域をすべて閉じ、
// グラフのボタンは /charts/<kind> を対応する iframe に読み込みます。
//
// クエリ:
//   - code, start_date, end_date, days: フォームの入力値
//   - panel: 最初から開いておく領域（複数可、直接リンク用）
//   - show: submit（または未指定）は panel を無視し、price/indicators/forecast は該当領域を開きます。
func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	page := Page{
		Code:       strings.ToUpper(strings.TrimSpace(c.Query("code"))),
		StartDate:  strings.TrimSpace(c.Query("start_date")),
		EndDate:    strings.TrimSpace(c.Query("end_date")),
		Days:       strings.TrimSpace(c.Query("days")),
		MinDate:    candleusecase.MinDate.Format(time.DateOnly),
		MaxDate:    h.now().Format(time.DateOnly),
		MaxHorizon: chartsusecase.MaxHorizon,
		Symbols:    h.listSymbols(ctx),
	}

	if page.Code == "" {
		page.Company = companyhandler.ToResponse(h.company.Intro())
		page.Panels = buildPanels(page, nil)
		render(c, page)
		return
	}

	page.Company, page.CompanyError = h.lookup(ctx, page.Code)
	page.Panels = buildPanels(page, visiblePanels(c.QueryArray("panel"), c.Query("show")))
	render(c, page)
}

func (h *DashboardHandler) lookup(ctx context.Context, code string) (api.CompanyResponse, string) {
	company, err := h.company.Lookup(ctx, code)
	if err == nil {
		return companyhandler.ToResponse(*company), ""
	}

	resp := api.CompanyResponse{Symbol: code, Name: code}
	if errors.Is(err, companyusecase.ErrCompanyNotFound) {
		return resp, "No company information was found for " + code + "."
	}
	slog.Warn("company lookup failed", "symbol", code, "error", err)
	return resp, "Company information is temporarily unavailable."
}

func (h *DashboardHandler) listSymbols(ctx context.Context) []dto.SymbolItem {
	if h.symbols == nil {
		return nil
	}
	symbols, err := h.symbols.ListActiveSymbols(ctx)
	if err != nil {
		slog.Warn("failed to list symbols", "error", err)
		return nil
	}
	return symbolhandler.ToItems(symbols)
}

// visiblePanels は表示中の領域と押されたボタンから、次に表示する領域を決めます。
func visiblePanels(current []string, show string) []string {
	if show == "" || show == showSubmit {
		return nil
	}
	open := append(slices.Clone(current), show)

	out := make([]string, 0, len(panelOrder))
	for _, kind := range panelOrder {
		if slices.Contains(open, kind) {
			out = append(out, kind)
		}
	}
	return out
}

// buildPanels は3つの領域をすべて返します。open に含まれる領域だけグラフを読み込みます。
func buildPanels(p Page, open []string) []Panel {
	out := make([]Panel, 0, len(panelOrder))
	for _, kind := range panelOrder {
		panel := Panel{
			Kind:    kind,
			Title:   panelTitles[kind],
			Section: panelSections[kind],
			Target:  kind + "-frame",
			Action:  "/charts/" + kind,
			Src:     "/charts/" + kind,
		}
		if slices.Contains(open, kind) {
			panel.Open = true
			panel.Src = panelSrc(kind, p)
		}
		out = append(out, panel)
	}
	return out
}

func panelSrc(kind string, p Page) string {
	q := url.Values{}
	if kind == PanelForecast {
		q.Set("days", p.Days)
	} else {
		if p.StartDate != "" {
			q.Set("start_date", p.StartDate)
		}
		if p.EndDate != "" {
			q.Set("end_date", p.EndDate)
		}
	}

	src := "/charts/" + kind + "/" + url.PathEscape(p.Code)
	if enc := q.Encode(); enc != "" {
		src += "?" + enc
	}
	return src
}

func render(c *gin.Context, page Page) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		slog.Error("failed to render dashboard", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
