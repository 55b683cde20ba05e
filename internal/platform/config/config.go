// Package config loads server configuration from a YAML file and environment variables.
//
// Precedence (highest first): environment variables, the YAML file, built-in defaults.
// ${VAR} references inside the YAML file are expanded before parsing.
package config

import (
	"time"
)

// Config is the root configuration for the API server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Bulk     BulkConfig     `yaml:"bulk"`
	Cache    CacheConfig    `yaml:"cache"`
	Redis    RedisConfig    `yaml:"redis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	Mode        string   `yaml:"mode"`       // gin mode: debug, release, test
	StaticDir   string   `yaml:"static_dir"` // directory holding index.html for "/"
	Timezone    string   `yaml:"timezone"`   // IANA name used for "today" and daily ranges; empty = Local
	CORSOrigins []string `yaml:"cors_origins"`
}

// ProviderConfig holds market data provider settings.
type ProviderConfig struct {
	BaseURL              string        `yaml:"base_url"`
	UserAgent            string        `yaml:"user_agent"`
	Timeout              time.Duration `yaml:"timeout"`
	IntradayLookbackDays int           `yaml:"intraday_lookback_days"`
}

// BulkConfig holds settings for multi-symbol requests.
type BulkConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// CacheConfig holds provider response cache settings.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// RedisConfig holds Redis connection settings. An empty host disables caching.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Catalog sources.
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourceFile     = "file"
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where the symbol catalog is read from at startup.
type CatalogConfig struct {
	Source   string         `yaml:"source"`
	Symbols  []SymbolEntry  `yaml:"symbols"` // used when source is "file"
	Database DatabaseConfig `yaml:"database"`
}

// SymbolEntry is one catalog row declared in the config file.
type SymbolEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// DatabaseConfig holds catalog database settings.
type DatabaseConfig struct {
	Driver  string        `yaml:"driver"` // sqlite or postgres
	DSN     string        `yaml:"dsn"`
	Timeout time.Duration `yaml:"timeout"`
	Migrate bool          `yaml:"migrate"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Location resolves Server.Timezone. An empty timezone means the host's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Server.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Server.Timezone)
}
