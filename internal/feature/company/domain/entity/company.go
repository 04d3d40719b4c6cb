// Package entity はcompanyフィーチャーのドメインモデルを定義します。
package entity

// Company は銘柄ヘッダーに表示する企業情報を表します。
type Company struct {
	Symbol      string // ティッカー
	Name        string // 登録名
	Description string // 事業概要
	LogoURL     string // ロゴ画像URL
	Exchange    string // 上場取引所
	Sector      string // セクター
	Website     string // 企業サイト
}
