// Package indicator computes technical indicators over price series.
package indicator

import "errors"

// DefaultEMASpan is the span of the dashboard's EWA_20 indicator.
const DefaultEMASpan = 20

// EMA returns the exponential moving average of prices with the given span.
// It seeds with the first price and applies alpha = 2/(span+1) recursively,
// so the result has the same length as prices.
func EMA(prices []float64, span int) ([]float64, error) {
	if span < 1 {
		return nil, errors.New("span must be at least 1")
	}
	if len(prices) == 0 {
		return []float64{}, nil
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = alpha*prices[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
