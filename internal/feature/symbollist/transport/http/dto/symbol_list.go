// Package dto はsymbollistフィーチャーのレスポンスDTOを定義します。
package dto

// SymbolListResponse は銘柄カタログ一覧のレスポンスDTOです。
type SymbolListResponse struct {
	Symbols map[string]string `json:"symbols"` // ティッカー → 表示名
	Count   int               `json:"count"`   // 件数
}
