// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New builds a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// UpstreamURL is the search endpoint; the query is sent as ?q=.
	UpstreamURL string `koanf:"upstream_url"`

	// UpstreamTimeoutMS bounds a single upstream call.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// MaxResults caps how many upstream records are considered per search.
	MaxResults int `koanf:"max_results"`

	// DefaultQuery is used when the caller omits ?q.
	DefaultQuery string `koanf:"default_query"`

	// EscapeQuery URL-encodes the query before building the upstream URL.
	EscapeQuery bool `koanf:"escape_query"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// UpstreamTimeout returns UpstreamTimeoutMS as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8000",
		UpstreamURL:        "https://lexica.art/api/v1/search",
		UpstreamTimeoutMS:  15_000,
		MaxResults:         30,
		DefaultQuery:       "advertisement",
		EscapeQuery:        true,
		CORSAllowedOrigins: []string{"*"},
	}
}
