// Package dto はYahoo Finance chart APIのレスポンス構造を定義します。
package dto

// ChartResponse は /v8/finance/chart/{symbol} のレスポンスです。
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartError はAPIがエラーを返した場合の本文です（例: 存在しない銘柄）。
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult は1銘柄分の時系列です。
type ChartResult struct {
	Meta       Meta    `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []Quote `json:"quote"`
	} `json:"indicators"`
}

// Meta は取引所の情報です。
type Meta struct {
	Symbol               string `json:"symbol"`
	ExchangeName         string `json:"exchangeName"`
	Timezone             string `json:"timezone"`             // 略称（例: "AEDT"）
	ExchangeTimezoneName string `json:"exchangeTimezoneName"` // IANA名（例: "Australia/Sydney"）
	GMTOffset            int    `json:"gmtoffset"`            // 秒
	DataGranularity      string `json:"dataGranularity"`
}

// Quote はOHLCVの配列です。取引のない区間はnullになるためポインタで受けます。
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}
