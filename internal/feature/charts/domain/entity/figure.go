package entity

import (
	"math"
	"time"
)

// Kind はグラフの種類です。
type Kind string

const (
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
)

// Mode は系列の描画方法です。
type Mode string

const (
	ModeLines        Mode = "lines"
	ModeLinesMarkers Mode = "lines+markers"
)

// Series はX軸と同じ長さの値列です。NaN は欠損として描画されません。
type Series struct {
	Name   string
	Mode   Mode
	Values []float64
}

// Figure は描画前のグラフデータです。
type Figure struct {
	Title  string
	Kind   Kind
	X      []time.Time
	Series []Series
}

// Gap は欠損値を表します。
func Gap() float64 { return math.NaN() }

// IsGap は v が欠損値かどうかを返します。
func IsGap(v float64) bool { return math.IsNaN(v) }
