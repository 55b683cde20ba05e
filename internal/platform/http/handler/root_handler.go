package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// APIVersion はルートのメタデータに含めるバージョンです。
const APIVersion = "1.0.0"

// Endpoints は公開しているAPIの一覧です。
var Endpoints = []string{
	"/api/health",
	"/api/symbols",
	"/api/stock/<symbol>",
	"/api/bulk",
}

// RootHandler は "/" を処理します。
// staticDir/index.html があればそれを返し、なければAPIのメタデータをJSONで返します。
type RootHandler struct {
	indexPath string
}

// NewRootHandler はRootHandlerを生成します。
func NewRootHandler(staticDir string) *RootHandler {
	return &RootHandler{indexPath: filepath.Join(staticDir, "index.html")}
}

// Root はフロントエンドのindex.htmlまたはAPIメタデータを返します。
func (h *RootHandler) Root(c *gin.Context) {
	if fi, err := os.Stat(h.indexPath); err == nil && !fi.IsDir() {
		c.File(h.indexPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Global Markets Tracker API Server",
		"version": APIVersion,
		"endpoints": gin.H{
			"health":       "/api/health",
			"symbols":      "/api/symbols",
			"single_stock": "/api/stock/<symbol>?interval=5m&date=YYYY-MM-DD",
			"bulk_data":    "/api/bulk (POST)",
		},
		"documentation": "Send a GET to /api/symbols for the tracked indices, then /api/stock/<symbol> for bars",
	})
}
