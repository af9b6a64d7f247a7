// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"time"
)

// DefaultEndpoint is the Scopus Search API endpoint.
const DefaultEndpoint = "https://api.elsevier.com/content/search/scopus"

// DefaultPageSize is the number of entries requested per page.
const DefaultPageSize = 10

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client without
	// a deadline.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scopus-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ScopusConfig holds settings for the Scopus Search API client.
type ScopusConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the search API URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// APIKey is the Elsevier developer key.
	APIKey string `json:"-" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// PageSize is the number of entries per page (default 10).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
}

// ServerConfig holds settings for the web front-end.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// SessionSecret signs the flash-message cookie.
	SessionSecret string `json:"-" yaml:"session_secret,omitempty" mapstructure:"session_secret"`

	// HistoryPath is the SQLite file for search history. Empty disables history.
	HistoryPath string `json:"history_path" yaml:"history_path" mapstructure:"history_path"`

	// SecureCookies marks the flash cookie Secure. Enable behind HTTPS.
	SecureCookies bool `json:"secure_cookies" yaml:"secure_cookies" mapstructure:"secure_cookies"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// AppConfig groups all configuration. It is built once at startup and passed
// to every component that needs it.
type AppConfig struct {
	Scopus ScopusConfig `json:"scopus" yaml:"scopus" mapstructure:"scopus"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

var (
	ErrMissingAPIKey        = errors.New("scopus API key is not set (scopus.api_key, API_KEY, or .secrets/scopus-api-key)")
	ErrMissingSessionSecret = errors.New("session secret is not set (server.session_secret, SECRET_KEY, or .secrets/session-secret)")
)

// Validate checks the settings every command needs.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Scopus.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if c.Scopus.Endpoint == "" {
		errs = append(errs, errors.New("scopus endpoint is empty"))
	}
	if c.Scopus.PageSize <= 0 {
		errs = append(errs, errors.New("scopus page size must be positive"))
	}
	return errors.Join(errs...)
}

// ValidateServer checks Validate plus the settings the web front-end needs.
func (c AppConfig) ValidateServer() error {
	err := c.Validate()
	if c.Server.SessionSecret == "" {
		err = errors.Join(err, ErrMissingSessionSecret)
	}
	return err
}
