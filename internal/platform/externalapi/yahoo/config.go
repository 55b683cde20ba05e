// Package yahoo provides a client for the Yahoo Finance chart API.
package yahoo

import "time"

const (
	// DefaultBaseURL is the public chart API host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	// DefaultUserAgent is sent with every request; the API rejects requests without one.
	DefaultUserAgent = "Mozilla/5.0 (compatible; markets-backend/1.0)"
	// DefaultTimeout bounds a single chart request.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL   string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	UserAgent string        // User-Agent header value
	Timeout   time.Duration // HTTP request timeout
}

// WithDefaults returns a copy of cfg with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
