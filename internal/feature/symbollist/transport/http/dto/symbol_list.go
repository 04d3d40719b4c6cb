// Package dto は symbollist の公開レスポンス型です。
package dto

// SymbolItem はティッカー候補1件。ID・並び順・有効フラグは公開しません。
type SymbolItem struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market,omitempty"`
}

// Label は候補リストに表示する文字列を返します（例: "Apple Inc. (NASDAQ)"）。
func (s SymbolItem) Label() string {
	if s.Market == "" {
		return s.Name
	}
	return s.Name + " (" + s.Market + ")"
}
