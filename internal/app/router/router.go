// Package router はAPIのルーティングを定義します。
package router

import (
	candleshandler "markets_backend/internal/feature/candles/transport/handler"
	symbollisthandler "markets_backend/internal/feature/symbollist/transport/handler"
	platformhandler "markets_backend/internal/platform/http/handler"
	"markets_backend/internal/platform/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するハンドラーの集合です。
type Handlers struct {
	Health  *platformhandler.HealthHandler
	Root    *platformhandler.RootHandler
	Candles *candleshandler.CandlesHandler
	Symbols *symbollisthandler.SymbolHandler
}

// NewRouter はミドルウェアとルートを設定したgin.Engineを返します。
func NewRouter(h Handlers, corsOrigins []string) *gin.Engine {
	r := gin.New()

	// panic回収、リクエストID、アクセスログ、CORS、圧縮の順に適用
	r.Use(
		platformhandler.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.CORS(corsOrigins),
		middleware.Zstd(),
	)

	// フロントエンドまたはAPIメタデータ
	r.GET("/", h.Root.Root)

	api := r.Group("/api")
	{
		// 導通確認用
		api.GET("/health", h.Health.Health)
		api.HEAD("/health", h.Health.Health)
		api.OPTIONS("/health", h.Health.Health)

		// 銘柄一覧
		api.GET("/symbols", h.Symbols.List)

		// バーデータ
		api.GET("/stock/:symbol", h.Candles.GetStock)
		api.POST("/bulk", h.Candles.PostBulk)
	}

	r.NoRoute(platformhandler.NotFound)

	return r
}
