// Package usecase implements the business logic for the symbol catalog.
package usecase

import (
	"context"
	"fmt"
	"sort"

	"markets_backend/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts where catalog entries come from (built-in table, YAML, database).
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
}

// LoadCatalog reads every active entry from the repository once and freezes it.
// Entries are ordered by SortKey; ties keep the repository order.
func LoadCatalog(ctx context.Context, repo SymbolRepository) (*Catalog, error) {
	symbols, err := repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sort.SliceStable(symbols, func(i, j int) bool { return symbols[i].SortKey < symbols[j].SortKey })
	return NewCatalog(symbols)
}

// SymbolUsecase provides read access to the frozen catalog.
type SymbolUsecase struct {
	catalog *Catalog
}

// NewSymbolUsecase creates a new SymbolUsecase with the given catalog.
func NewSymbolUsecase(c *Catalog) *SymbolUsecase {
	return &SymbolUsecase{catalog: c}
}

// ListSymbols returns every catalog entry in catalog order. It never fails:
// the catalog is fixed at startup.
func (u *SymbolUsecase) ListSymbols(_ context.Context) []entity.Symbol {
	return u.catalog.Entries()
}
