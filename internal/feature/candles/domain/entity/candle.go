// Package entity defines the domain models for the candles feature.
package entity

import "time"

// Candle represents one daily OHLCV (Open, High, Low, Close, Volume) observation
// for a stock symbol.
type Candle struct {
	Symbol   string    // Stock ticker symbol (e.g., "AAPL", "MSFT")
	Interval string    // Time interval, always "1day" for the dashboard
	Time     time.Time // Trading date of this observation
	Open     float64   // Opening price
	High     float64   // Highest price during the day
	Low      float64   // Lowest price during the day
	Close    float64   // Closing price
	Volume   int64     // Trading volume
}

// Range selects which daily observations to retrieve.
// A zero Start or End leaves that side unbounded. Last keeps only the most
// recent N observations (0 keeps all of them).
type Range struct {
	Start time.Time
	End   time.Time
	Last  int
}

// HasStart reports whether a lower date bound was requested.
func (r Range) HasStart() bool { return !r.Start.IsZero() }

// HasEnd reports whether an upper date bound was requested.
func (r Range) HasEnd() bool { return !r.End.IsZero() }
