package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"
)

// zstdWriter は最初の書き込み時にエンコーダを生成するレスポンスライターです。
// 本文のないレスポンス（HEAD、204など）は圧縮しません。
type zstdWriter struct {
	gin.ResponseWriter
	encoder *zstd.Encoder
}

func (w *zstdWriter) Write(b []byte) (int, error) {
	if w.encoder == nil {
		h := w.Header()
		h.Del("Content-Length")
		h.Set("Content-Encoding", "zstd")
		enc, err := zstd.NewWriter(w.ResponseWriter, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return 0, err
		}
		w.encoder = enc
	}
	return w.encoder.Write(b)
}

func (w *zstdWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *zstdWriter) Close() error {
	if w.encoder == nil {
		return nil
	}
	return w.encoder.Close()
}

// Zstd はクライアントが Accept-Encoding: zstd を送った場合にレスポンスを圧縮します。
func Zstd() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only compress if client explicitly accepts zstd
		if c.Request.Method == http.MethodHead || !acceptsZstd(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		zw := &zstdWriter{ResponseWriter: c.Writer}
		c.Writer = zw
		c.Header("Vary", "Accept-Encoding")
		defer func() {
			if err := zw.Close(); err != nil {
				slog.Warn("failed to flush zstd response", "error", err)
			}
		}()
		c.Next()
	}
}

func acceptsZstd(header string) bool {
	for _, part := range strings.Split(header, ",") {
		enc, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(strings.TrimSpace(enc), "zstd") {
			return strings.ReplaceAll(params, " ", "") != "q=0"
		}
	}
	return false
}
