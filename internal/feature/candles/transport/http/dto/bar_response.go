// Package dto はcandlesフィーチャーのHTTPリクエスト/レスポンスDTOを定義します。
package dto

import "github.com/guregu/null/v6"

// BarResponse はバー1本分のレスポンスDTOです。欠損値はJSONのnullになります。
type BarResponse struct {
	Time   string     `json:"time"`   // タイムゾーンなしのISO-8601（UTC相当）
	Open   null.Float `json:"open"`   // 始値
	High   null.Float `json:"high"`   // 高値
	Low    null.Float `json:"low"`    // 安値
	Close  null.Float `json:"close"`  // 終値
	Volume null.Int   `json:"volume"` // 出来高
	Value  null.Float `json:"value"`  // closeと同じ値（汎用チャート向け）
}

// StockResponse は GET /api/stock/:symbol のレスポンスDTOです。
type StockResponse struct {
	Symbol   string        `json:"symbol"`
	Name     string        `json:"name"`
	Interval string        `json:"interval"`
	Date     string        `json:"date"`
	Data     []BarResponse `json:"data"`
	Count    int           `json:"count"`
}

// SymbolResult は一括取得レスポンス内の1銘柄分です。
type SymbolResult struct {
	Name string        `json:"name"`
	Data []BarResponse `json:"data"`
}

// BulkResponse は POST /api/bulk のレスポンスDTOです。
type BulkResponse struct {
	Results          map[string]SymbolResult `json:"results"`
	Interval         string                  `json:"interval"`
	Date             string                  `json:"date"`
	RequestedSymbols int                     `json:"requested_symbols"`
	Timestamp        string                  `json:"timestamp"`
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
