package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dash/internal/feature/symbollist/domain/entity"
)

func TestParseSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []entity.Symbol
		wantErr bool
	}{
		{
			name: "success: active defaults to true",
			input: `
symbols:
  - code: AAPL
    name: Apple Inc
    market: NASDAQ
  - code: TWTR
    name: Twitter
    market: NYSE
    active: false
    sort_key: 9
`,
			want: []entity.Symbol{
				{Code: "AAPL", Name: "Apple Inc", Market: "NASDAQ", IsActive: true},
				{Code: "TWTR", Name: "Twitter", Market: "NYSE", IsActive: false, SortKey: 9},
			},
		},
		{
			name:  "success: empty document",
			input: "",
			want:  nil,
		},
		{
			name:    "failure: unknown field",
			input:   "symbols:\n  - code: AAPL\n    ticker: AAPL\n",
			wantErr: true,
		},
		{
			name:    "failure: malformed yaml",
			input:   "symbols: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSymbols(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSymbolsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols:\n  - code: MSFT\n    name: Microsoft Corp\n    market: NASDAQ\n"), 0o600))

	got, err := LoadSymbolsFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MSFT", got[0].Code)

	_, err = LoadSymbolsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
