package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"markets_backend/internal/app/di"
	"markets_backend/internal/app/router"
	candleshandler "markets_backend/internal/feature/candles/transport/handler"
	candlesusecase "markets_backend/internal/feature/candles/usecase"
	symbollisthandler "markets_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "markets_backend/internal/feature/symbollist/usecase"
	"markets_backend/internal/platform/config"
	platformhandler "markets_backend/internal/platform/http/handler"
	"markets_backend/internal/platform/logging"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.LoadAndValidate(config.PathFromEnv())
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if _, err := logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("logging: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis（任意）
	rdb := di.NewRedis(ctx, cfg)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// カタログは起動時に一度だけ読み込む
	catalog, err := di.NewCatalog(ctx, cfg)
	if err != nil {
		slog.Error("failed to load symbol catalog", "error", err)
		os.Exit(1)
	}

	// Repository
	market := di.NewMarket(cfg, rdb)

	// Usecase
	symbolUC := symbollistusecase.NewSymbolUsecase(catalog)
	candlesUC := candlesusecase.NewCandlesUsecase(market, catalog, candlesusecase.Options{
		Location:             loc,
		IntradayLookbackDays: cfg.Provider.IntradayLookbackDays,
		BulkConcurrency:      cfg.Bulk.Concurrency,
	})

	// Handler
	handlers := router.Handlers{
		Health:  platformhandler.NewHealthHandler(nil),
		Root:    platformhandler.NewRootHandler(cfg.Server.StaticDir),
		Candles: candleshandler.NewCandlesHandler(candlesUC),
		Symbols: symbollisthandler.NewSymbolHandler(symbolUC),
	}

	// ルータ生成
	r := router.NewRouter(handlers, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "timezone", loc.String(), "symbols", catalog.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
