package handler

import (
	"log/slog"
	"net/http"

	"markets_backend/internal/platform/http/middleware"

	"github.com/gin-gonic/gin"
)

// NotFound は未定義のルートに対して利用可能なエンドポイントの一覧を返します。
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":               "Endpoint not found",
		"available_endpoints": Endpoints,
	})
}

// InternalError は500の共通レスポンスを返します。詳細はクライアントに返さずログにのみ出力します。
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": "Please check server logs for details",
	})
}

// Recovery はハンドラー内のpanicを回収して500を返すミドルウェアです。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(middleware.ContextRequestID),
			"panic", recovered,
		)
		InternalError(c)
	})
}
