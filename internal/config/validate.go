package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ewilliams-labs/soundalike/internal/logging"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks required fields for the selected catalog driver and the
// numeric bounds of every section.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	switch c.Catalog.Driver {
	case DriverSpotify:
		if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
			add("spotify.client_id and spotify.client_secret are required for the spotify driver")
		}
		if c.Spotify.BaseURL == "" {
			add("spotify.base_url is required")
		}
	case DriverSQLite:
		if c.Catalog.SQLitePath == "" {
			add("catalog.sqlite_path is required for the sqlite driver")
		}
	default:
		add("catalog.driver must be %q or %q, got %q", DriverSpotify, DriverSQLite, c.Catalog.Driver)
	}

	if c.Spotify.MaxRetries < 1 {
		add("spotify.max_retries must be at least 1")
	}
	if c.Spotify.RequestsPerSecond <= 0 || c.Spotify.Burst < 1 {
		add("spotify.requests_per_second must be positive and spotify.burst at least 1")
	}
	if c.Recommend.MaxCount < 1 || c.Recommend.MaxCount > 50 {
		add("recommend.max_count must be between 1 and 50")
	}
	if c.Recommend.DefaultCount < 1 || c.Recommend.DefaultCount > c.Recommend.MaxCount {
		add("recommend.default_count must be between 1 and recommend.max_count")
	}
	if c.Recommend.MaxConcurrency < 1 {
		add("recommend.max_concurrency must be at least 1")
	}
	if c.Recommend.PoolSize < 0 {
		add("recommend.pool_size must not be negative")
	}
	if !logging.ValidLevel(c.Log.Level) {
		add("log.level %q is not a known level", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "console" {
		add("log.format must be json or console")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
