package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !slices.Contains([]string{"debug", "release", "test"}, c.Server.Mode) {
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("server.timezone: %w", err)
	}

	if c.Provider.BaseURL == "" {
		return errors.New("provider.base_url is required")
	}
	if c.Provider.Timeout < 0 {
		return errors.New("provider.timeout must be >= 0")
	}
	if c.Provider.IntradayLookbackDays < 1 || c.Provider.IntradayLookbackDays > 60 {
		return fmt.Errorf("provider.intraday_lookback_days must be between 1 and 60, got %d", c.Provider.IntradayLookbackDays)
	}

	if c.Bulk.Concurrency < 1 {
		return errors.New("bulk.concurrency must be >= 1")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must be >= 0")
	}

	if err := c.Catalog.validate(); err != nil {
		return err
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func (c *CatalogConfig) validate() error {
	switch c.Source {
	case CatalogSourceBuiltin:
		return nil
	case CatalogSourceFile:
		if len(c.Symbols) == 0 {
			return errors.New("catalog.symbols is required when catalog.source is file")
		}
		for i, s := range c.Symbols {
			if s.Code == "" {
				return fmt.Errorf("catalog.symbols[%d].code is required", i)
			}
		}
		return nil
	case CatalogSourceDatabase:
		if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
			return fmt.Errorf("catalog.database.driver must be sqlite or postgres, got %q", c.Database.Driver)
		}
		if c.Database.DSN == "" {
			return errors.New("catalog.database.dsn is required")
		}
		return nil
	default:
		return fmt.Errorf("catalog.source must be builtin, file or database, got %q", c.Source)
	}
}
