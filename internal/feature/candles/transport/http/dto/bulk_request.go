package dto

// BulkRequest は POST /api/bulk のリクエストボディです。
// interval と date は省略時に nil となり、デフォルト値が使われます。
type BulkRequest struct {
	Symbols  []string `json:"symbols"`
	Interval *string  `json:"interval"`
	Date     *string  `json:"date"`
}
