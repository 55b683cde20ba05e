// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"markets_backend/internal/feature/symbollist/domain/entity"
	"markets_backend/internal/feature/symbollist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// SymbolUsecase は銘柄カタログに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListSymbols(ctx context.Context) []entity.Symbol
}

// SymbolHandler は銘柄カタログに関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List はカタログ全体を {symbols: {ticker: name}, count} 形式で返します。
//
// エンドポイント例:
// GET /api/symbols
func (h *SymbolHandler) List(c *gin.Context) {
	symbols := h.uc.ListSymbols(c.Request.Context())
	out := dto.SymbolListResponse{
		Symbols: make(map[string]string, len(symbols)),
		Count:   len(symbols),
	}
	for _, s := range symbols {
		out.Symbols[s.Code] = s.Name
	}
	c.JSON(http.StatusOK, out)
}
