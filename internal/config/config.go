// Package config defines client configuration and its loading hooks.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// BaseURL is prepended to every relative endpoint path.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single request round trip.
	Timeout time.Duration `koanf:"timeout"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// StoragePath is the sqlite file holding credentials. Empty keeps them in memory.
	StoragePath string `koanf:"storage_path"`

	// UploadField is the default multipart field name.
	UploadField string `koanf:"upload_field"`

	// GeocodeURL and GeocodeKey configure the reverse geocoding service.
	GeocodeURL string `koanf:"geocode_url"`
	GeocodeKey string `koanf:"geocode_key"`

	// MetricsFile, when set, receives a text dump of the metrics registry on exit.
	MetricsFile string `koanf:"metrics_file"`

	// Locale selects the language of user-facing messages (zh-CN, en).
	Locale string `koanf:"locale"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		BaseURL:     "http://localhost:8081",
		Timeout:     25 * time.Second,
		LogLevel:    "info",
		UploadField: "file",
		GeocodeURL:  "https://apis.map.qq.com/ws/geocoder/v1/",
		Locale:      "zh-CN",
	}
}

// Validate checks the fields every caller depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an absolute URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.UploadField == "" {
		return fmt.Errorf("%w: upload_field must not be empty", ErrInvalidConfig)
	}
	return nil
}
