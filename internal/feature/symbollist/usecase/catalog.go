package usecase

import (
	"errors"
	"fmt"
	"strings"

	"markets_backend/internal/feature/symbollist/domain/entity"
)

// ErrDuplicateSymbol はカタログに同じティッカーが複数含まれている場合に返されます。
var ErrDuplicateSymbol = errors.New("duplicate symbol in catalog")

// Catalog は起動時に一度だけ構築される読み取り専用の銘柄カタログです。
// 構築後は変更されないため、複数のgoroutineから同時に参照できます。
type Catalog struct {
	entries []entity.Symbol
	names   map[string]string
}

// NewCatalog builds an immutable catalog from the given entries.
// Entries keep their input order; blank codes are rejected.
func NewCatalog(symbols []entity.Symbol) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entity.Symbol, 0, len(symbols)),
		names:   make(map[string]string, len(symbols)),
	}
	for _, s := range symbols {
		code := strings.TrimSpace(s.Code)
		if code == "" {
			return nil, fmt.Errorf("catalog entry with empty code (name=%q)", s.Name)
		}
		if _, ok := c.names[code]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, code)
		}
		s.Code = code
		c.entries = append(c.entries, s)
		c.names[code] = s.Name
	}
	return c, nil
}

// Name はティッカーに対応する表示名を返します。
func (c *Catalog) Name(code string) (string, bool) {
	name, ok := c.names[code]
	return name, ok
}

// Len はカタログの件数を返します。
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries は登録順のエントリのコピーを返します。
func (c *Catalog) Entries() []entity.Symbol {
	out := make([]entity.Symbol, len(c.entries))
	copy(out, c.entries)
	return out
}
