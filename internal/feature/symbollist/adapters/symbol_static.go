package adapters

import (
	"context"

	"markets_backend/internal/feature/symbollist/domain/entity"
	"markets_backend/internal/feature/symbollist/usecase"
)

// DefaultSymbols は設定でカタログが指定されなかった場合に使う組み込みの指数一覧です。
var DefaultSymbols = []entity.Symbol{
	// Australian indices
	{Code: "^AXJO", Name: "ASX 200"},
	{Code: "^AXKO", Name: "ASX 300"},
	{Code: "^AFLI", Name: "ASX 50"},
	{Code: "^AXMD", Name: "ASX 100"},
	{Code: "^AXSO", Name: "ASX Small Cap"},
	// Asian indices
	{Code: "^N225", Name: "Nikkei 225"},
	{Code: "^HSI", Name: "Hang Seng"},
	{Code: "000001.SS", Name: "SSE Composite"},
	{Code: "^NSEI", Name: "NIFTY 50"},
	// European indices
	{Code: "^FTSE", Name: "FTSE 100"},
	{Code: "^GDAXI", Name: "DAX"},
	{Code: "^FCHI", Name: "CAC 40"},
	// US indices
	{Code: "^GSPC", Name: "S&P 500"},
	{Code: "^DJI", Name: "Dow Jones"},
	{Code: "^IXIC", Name: "NASDAQ"},
}

// symbolStatic はメモリ上の固定リストを返すSymbolRepository実装です。
type symbolStatic struct {
	symbols []entity.Symbol
}

var _ usecase.SymbolRepository = (*symbolStatic)(nil)

// NewStaticSymbolRepository returns a repository over a fixed list.
// An empty list falls back to DefaultSymbols.
func NewStaticSymbolRepository(symbols []entity.Symbol) *symbolStatic {
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	out := make([]entity.Symbol, len(symbols))
	for i, s := range symbols {
		s.IsActive = true
		if s.SortKey == 0 {
			s.SortKey = i + 1
		}
		out[i] = s
	}
	return &symbolStatic{symbols: out}
}

// ListActive は保持しているリストのコピーを返します。
func (r *symbolStatic) ListActive(_ context.Context) ([]entity.Symbol, error) {
	out := make([]entity.Symbol, len(r.symbols))
	copy(out, r.symbols)
	return out, nil
}
