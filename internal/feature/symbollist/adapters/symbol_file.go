package adapters

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"stock_dash/internal/feature/symbollist/domain/entity"
)

// symbolFile はシード用YAMLファイルの形式です。
//
//	symbols:
//	  - code: AAPL
//	    name: Apple Inc
//	    market: NASDAQ
//	    active: true   # 省略時は true
type symbolFile struct {
	Symbols []symbolEntry `yaml:"symbols"`
}

type symbolEntry struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Market  string `yaml:"market"`
	Active  *bool  `yaml:"active"`
	SortKey int    `yaml:"sort_key"`
}

// LoadSymbolsFile はYAMLファイルから銘柄一覧を読み込みます。
func LoadSymbolsFile(path string) ([]entity.Symbol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols file: %w", err)
	}
	defer f.Close()

	return ParseSymbols(f)
}

// ParseSymbols はYAMLを読み込み銘柄一覧に変換します。
func ParseSymbols(r io.Reader) ([]entity.Symbol, error) {
	var file symbolFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse symbols file: %w", err)
	}

	out := make([]entity.Symbol, 0, len(file.Symbols))
	for _, e := range file.Symbols {
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		out = append(out, entity.Symbol{
			Code:     e.Code,
			Name:     e.Name,
			Market:   e.Market,
			IsActive: active,
			SortKey:  e.SortKey,
		})
	}
	return out, nil
}
