package di

import (
	"context"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"markets_backend/internal/platform/config"
	infraredis "markets_backend/internal/platform/redis"
)

// NewRedis connects to Redis when it is configured.
// If Redis is not configured or unreachable, it returns nil and the server runs without cache.
func NewRedis(ctx context.Context, cfg *config.Config) *redisv9.Client {
	rcfg := infraredis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if !rcfg.Enabled() {
		slog.Info("Redis not configured; running without cache")
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, rcfg)
	if err != nil {
		slog.Warn("Redis unavailable; running without cache", "error", err)
		return nil
	}
	return rdb
}
