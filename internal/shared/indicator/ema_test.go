package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prices []float64
		span   int
		want   []float64
	}{
		{
			name:   "span 3 halves the weight",
			prices: []float64{10, 12, 14, 13},
			span:   3,
			want:   []float64{10, 11, 12.5, 12.75},
		},
		{
			name:   "span 1 follows the price",
			prices: []float64{5, 7, 9},
			span:   1,
			want:   []float64{5, 7, 9},
		},
		{
			name:   "constant series stays constant",
			prices: []float64{100, 100, 100, 100},
			span:   DefaultEMASpan,
			want:   []float64{100, 100, 100, 100},
		},
		{
			name:   "empty series",
			prices: nil,
			span:   DefaultEMASpan,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EMA(tt.prices, tt.span)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "index %d", i)
			}
		})
	}
}

func TestEMA_Span20(t *testing.T) {
	t.Parallel()

	got, err := EMA([]float64{1, 2}, DefaultEMASpan)
	require.NoError(t, err)

	// alpha = 2/21
	assert.InDelta(t, 1+2.0/21.0, got[1], 1e-12)
}

func TestEMA_InvalidSpan(t *testing.T) {
	t.Parallel()

	_, err := EMA([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
}
