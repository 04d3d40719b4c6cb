// Package echarts はgo-echartsを使用してグラフをHTMLページとして描画します。
package echarts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stock_dash/internal/feature/charts/domain/entity"
)

const (
	// DateLayout はX軸ラベルの日付形式です。
	DateLayout = "2006-01-02"

	gapValue = "-"
)

// Renderer はFigureをgo-echartsの折れ線グラフとして描画します。
// scatter種別は線とマーカーを併用した折れ線で表現します。
type Renderer struct {
	Width  string
	Height string
}

// NewRenderer はダッシュボードの領域に合わせたRendererを生成します。
func NewRenderer() *Renderer {
	return &Renderer{Width: "100%", Height: "420px"}
}

// Render は fig を完結したHTMLページとして w に書き込みます。
func (r *Renderer) Render(w io.Writer, fig *entity.Figure) error {
	if fig == nil {
		return fmt.Errorf("echarts: nil figure")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title,
			Width:     r.Width,
			Height:    r.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)

	line.SetXAxis(Labels(fig))
	for _, s := range fig.Series {
		line.AddSeries(s.Name, LineData(s.Values),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(s.Mode == entity.ModeLinesMarkers)}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("echarts: render %q: %w", fig.Title, err)
	}
	return nil
}

// Labels はX軸の日付を文字列に変換します。
func Labels(fig *entity.Figure) []string {
	out := make([]string, len(fig.X))
	for i, t := range fig.X {
		out[i] = t.Format(DateLayout)
	}
	return out
}

// LineData は欠損値を "-" に置き換えた系列データを返します。
func LineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if entity.IsGap(v) {
			out[i] = opts.LineData{Value: gapValue}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}
