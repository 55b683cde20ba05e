// Package entity defines the domain models for the candles feature.
package entity

import (
	"time"

	"github.com/guregu/null/v6"
)

// Bar represents one OHLCV (Open, High, Low, Close, Volume) observation
// for a symbol at a specific timestamp and interval.
// プロバイダが値を返さなかったフィールドは null のまま保持し、0 で埋めません。
type Bar struct {
	Time   time.Time  // Bar start, in the exchange's local time zone
	Open   null.Float // Opening price
	High   null.Float // Highest price during this period
	Low    null.Float // Lowest price during this period
	Close  null.Float // Closing price
	Volume null.Int   // Trading volume
}

// TradingDate は取引所ローカル時刻での暦日を "2006-01-02" 形式で返します。
func (b Bar) TradingDate() string {
	return b.Time.Format(DateLayout)
}
