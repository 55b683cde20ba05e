package entity

// DateLayout はAPIで受け付ける日付の形式です。
const DateLayout = "2006-01-02"

// Interval はバーの時間足です。
type Interval string

// Supported intervals.
const (
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
)

// SupportedIntervals は受け付ける時間足の一覧です（エラーメッセージ用に順序を固定）。
var SupportedIntervals = []Interval{Interval5m, Interval15m, Interval30m, Interval1h, Interval1d}

// ParseInterval は文字列を Interval に変換します。未対応の値は ok=false を返します。
func ParseInterval(s string) (Interval, bool) {
	for _, iv := range SupportedIntervals {
		if string(iv) == s {
			return iv, true
		}
	}
	return "", false
}

// IsIntraday は日中足（5m/15m/30m/1h）かどうかを返します。
func (i Interval) IsIntraday() bool {
	return i != Interval1d
}

func (i Interval) String() string { return string(i) }
