package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultConfigPath           = "configs/config.yaml"
	DefaultPort                 = 5000
	DefaultMode                 = "release"
	DefaultStaticDir            = "static"
	DefaultProviderBaseURL      = "https://query1.finance.yahoo.com"
	DefaultProviderTimeout      = 10 * time.Second
	DefaultIntradayLookbackDays = 7
	DefaultBulkConcurrency      = 4
	DefaultCacheTTL             = time.Minute
	DefaultDBTimeout            = 30 * time.Second
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
)

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultMode
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = DefaultStaticDir
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	// Provider defaults
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = DefaultProviderBaseURL
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultProviderTimeout
	}
	if c.Provider.IntradayLookbackDays == 0 {
		c.Provider.IntradayLookbackDays = DefaultIntradayLookbackDays
	}

	if c.Bulk.Concurrency == 0 {
		c.Bulk.Concurrency = DefaultBulkConcurrency
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}

	// Catalog defaults
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogSourceBuiltin
	}
	if c.Catalog.Database.Timeout == 0 {
		c.Catalog.Database.Timeout = DefaultDBTimeout
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
