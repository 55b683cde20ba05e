package cache

import (
	"time"
)

// HistoricalTTL は確定済みの過去データに使う保持期間です。
const HistoricalTTL = 24 * time.Hour

// TTLForRange は [start, end) のデータを何秒キャッシュするかを返します。
// end が now より1日以上前であれば確定済みとみなし、HistoricalTTL を返します。
// それ以外（当日分や進行中の区間）は base を返します。
func TTLForRange(now, end time.Time, base time.Duration) time.Duration {
	if end.Add(24 * time.Hour).Before(now) {
		return HistoricalTTL
	}
	return base
}
