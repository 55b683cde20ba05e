// Package db はカタログ用データベースへの接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"markets_backend/internal/feature/symbollist/domain/entity"
)

// Config はデータベース接続の設定です。
type Config struct {
	Driver  string        // "sqlite" または "postgres"
	DSN     string        // ドライバ固有の接続文字列
	Timeout time.Duration // 接続リトライを諦めるまでの時間
	Migrate bool          // 起動時にsymbolsテーブルを作成するか
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// DialectorOpener はドライバ名に対応するOpenerを返します。
func DialectorOpener(driver string) (Opener, error) {
	var open func(string) gorm.Dialector
	switch driver {
	case "sqlite":
		open = sqlite.Open
	case "postgres":
		open = postgres.Open
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	}, nil
}

// ConnectWithRetry はtimeoutに達するまでretryInterval間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従ってデータベースに接続し、必要ならマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	opener, err := DialectorOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	db, err := ConnectWithRetry(cfg.DSN, timeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Migrate {
		if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
