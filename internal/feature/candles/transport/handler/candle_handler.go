// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"markets_backend/internal/feature/candles/domain/entity"
	"markets_backend/internal/feature/candles/transport/http/dto"
	"markets_backend/internal/feature/candles/usecase"
	platformhandler "markets_backend/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

// barTimeLayout はバーの時刻をタイムゾーンなしで出力する形式です。
const barTimeLayout = "2006-01-02T15:04:05"

// CandlesUsecase はバー取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetSymbolBars(ctx context.Context, symbol string, q usecase.Query) (usecase.SymbolBars, error)
	GetBulkBars(ctx context.Context, symbols []string, q usecase.Query) (usecase.BulkBars, error)
}

// CandlesHandler はバーデータのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetStock は1銘柄分のバーをJSONで返します。
//
// エンドポイント例:
// GET /api/stock/:symbol?interval=5m&date=2024-01-15
func (h *CandlesHandler) GetStock(c *gin.Context) {
	symbol := c.Param("symbol")
	var q usecase.Query
	// 空文字列での指定（?interval=）は未指定とは区別し、検証エラーにする
	if v, ok := c.GetQuery("interval"); ok {
		q.Interval = &v
	}
	if v, ok := c.GetQuery("date"); ok {
		q.Date = &v
	}

	res, err := h.uc.GetSymbolBars(c.Request.Context(), symbol, q)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	data := toBarResponses(res.Result)
	c.JSON(http.StatusOK, dto.StockResponse{
		Symbol:   res.Symbol,
		Name:     res.Name,
		Interval: res.Interval.String(),
		Date:     res.Date,
		Data:     data,
		Count:    len(data),
	})
}

// PostBulk は複数銘柄のバーをまとめて返します。
//
// エンドポイント例:
// POST /api/bulk {"symbols":["^AXJO","^GSPC"],"interval":"5m","date":"2024-01-15"}
func (h *CandlesHandler) PostBulk(c *gin.Context) {
	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "no JSON data provided"
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
		return
	}

	res, err := h.uc.GetBulkBars(c.Request.Context(), req.Symbols, usecase.Query{Interval: req.Interval, Date: req.Date})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out := dto.BulkResponse{
		Results:          make(map[string]dto.SymbolResult, len(res.Items)),
		Interval:         res.Interval.String(),
		Date:             res.Date,
		RequestedSymbols: len(req.Symbols),
		Timestamp:        res.RequestedAt.Format(platformhandler.TimestampLayout),
	}
	for _, item := range res.Items {
		out.Results[item.Symbol] = dto.SymbolResult{
			Name: item.Name,
			Data: toBarResponses(item.Result),
		}
	}
	c.JSON(http.StatusOK, out)
}

// abortWithError は検証エラーを400、それ以外を500に変換します。
// 500の場合、詳細はログにのみ出力しクライアントには返しません。
func (h *CandlesHandler) abortWithError(c *gin.Context, err error) {
	if usecase.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Error("unexpected error in candles handler", "path", c.FullPath(), "error", err)
	platformhandler.InternalError(c)
}

// toBarResponses はFetchResultをレスポンス用のバー配列に変換します。
// 取得に失敗した結果は空配列として扱います（HTTPステータスは200のまま）。
func toBarResponses(r usecase.FetchResult) []dto.BarResponse {
	if !r.OK() {
		return []dto.BarResponse{}
	}
	out := make([]dto.BarResponse, 0, len(r.Bars))
	for _, b := range r.Bars {
		out = append(out, toBarResponse(b))
	}
	return out
}

func toBarResponse(b entity.Bar) dto.BarResponse {
	return dto.BarResponse{
		Time:   b.Time.UTC().Format(barTimeLayout),
		Open:   b.Open,
		High:   b.High,
		Low:    b.Low,
		Close:  b.Close,
		Volume: b.Volume,
		Value:  b.Close,
	}
}
