package di

import (
	"context"
	"fmt"
	"log/slog"

	symbollistadapters "markets_backend/internal/feature/symbollist/adapters"
	"markets_backend/internal/feature/symbollist/domain/entity"
	symbollistusecase "markets_backend/internal/feature/symbollist/usecase"
	"markets_backend/internal/platform/config"
	"markets_backend/internal/platform/db"
)

// NewCatalog reads the symbol catalog once from the configured source and freezes it.
func NewCatalog(ctx context.Context, cfg *config.Config) (*symbollistusecase.Catalog, error) {
	var repo symbollistusecase.SymbolRepository

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		symbols := make([]entity.Symbol, 0, len(cfg.Catalog.Symbols))
		for _, s := range cfg.Catalog.Symbols {
			symbols = append(symbols, entity.Symbol{Code: s.Code, Name: s.Name})
		}
		repo = symbollistadapters.NewStaticSymbolRepository(symbols)

	case config.CatalogSourceDatabase:
		gdb, err := db.OpenDB(db.Config{
			Driver:  cfg.Catalog.Database.Driver,
			DSN:     cfg.Catalog.Database.DSN,
			Timeout: cfg.Catalog.Database.Timeout,
			Migrate: cfg.Catalog.Database.Migrate,
		})
		if err != nil {
			return nil, fmt.Errorf("open catalog database: %w", err)
		}
		// カタログは起動時に一度読むだけなので、読み込み後に接続を閉じる
		defer func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()
		repo = symbollistadapters.NewSymbolRepository(gdb)

	default:
		repo = symbollistadapters.NewStaticSymbolRepository(nil)
	}

	catalog, err := symbollistusecase.LoadCatalog(ctx, repo)
	if err != nil {
		return nil, err
	}
	slog.Info("symbol catalog loaded", "source", cfg.Catalog.Source, "count", catalog.Len())
	return catalog, nil
}
