// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TimestampLayout はレスポンスに含めるサーバ時刻の形式です（マイクロ秒、タイムゾーンなし）。
const TimestampLayout = "2006-01-02T15:04:05.000000"

// HealthHandler は /api/health を処理します。
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler はHealthHandlerを生成します。nowがnilの場合はtime.Nowを使います。
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Health はサービスの死活確認に応答します。外部プロバイダへの疎通は確認しません。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": h.now().Format(TimestampLayout),
			"message":   "Global Markets Tracker Backend is running",
		})
	}
}
