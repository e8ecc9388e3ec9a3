// Package fred provides a client for the FRED (Federal Reserve Economic Data) API.
package fred

import (
	"fmt"
	"strings"
	"time"

	"fred_dashboard/internal/feature/indicators/domain"
)

const (
	// EnvAPIKey is the environment variable holding the FRED API key.
	EnvAPIKey = "FRED_API_KEY"
	// DefaultBaseURL is the public FRED API endpoint.
	DefaultBaseURL = "https://api.stlouisfed.org"
	// DefaultTimeout bounds one FRED request end to end.
	DefaultTimeout = 10 * time.Second
	// DefaultRateLimit is FRED's documented limit of requests per minute.
	DefaultRateLimit = 120
)

// Config holds configuration for the FRED API client.
type Config struct {
	APIKey    string        `yaml:"api_key"`    // API key for authentication
	BaseURL   string        `yaml:"base_url"`   // Base URL for the API (e.g., "https://api.stlouisfed.org")
	Timeout   time.Duration `yaml:"timeout"`    // HTTP request timeout
	RateLimit int           `yaml:"rate_limit"` // Maximum requests per minute
}

// Validate fills defaults and reports a missing API key as domain.ErrConfiguration.
func (c *Config) Validate() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: FRED API key not found; set %s in the environment or .env file",
			domain.ErrConfiguration, EnvAPIKey)
	}
	return nil
}
