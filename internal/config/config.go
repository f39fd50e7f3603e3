// Package config loads layered configuration: struct defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"time"
)

// Catalog drivers.
const (
	DriverSpotify = "spotify"
	DriverSQLite  = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Spotify   SpotifyConfig   `koanf:"spotify"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// SpotifyConfig configures the live catalog client.
type SpotifyConfig struct {
	ClientID          string        `koanf:"client_id"`
	ClientSecret      string        `koanf:"client_secret"`
	BaseURL           string        `koanf:"base_url"`
	TokenURL          string        `koanf:"token_url"`
	Market            string        `koanf:"market"`
	MaxRetries        int           `koanf:"max_retries"`
	RetryBackoff      time.Duration `koanf:"retry_backoff"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

type CatalogConfig struct {
	Driver     string `koanf:"driver"` // spotify or sqlite
	SQLitePath string `koanf:"sqlite_path"`
}

// RecommendConfig bounds recommendation requests.
type RecommendConfig struct {
	DefaultCount   int           `koanf:"default_count"`
	MaxCount       int           `koanf:"max_count"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxConcurrency int           `koanf:"max_concurrency"`
	PoolSize       int           `koanf:"pool_size"` // 0 keeps every candidate
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Spotify: SpotifyConfig{
			BaseURL:           "https://api.spotify.com/v1",
			TokenURL:          "https://accounts.spotify.com/api/token",
			Market:            "US",
			MaxRetries:        3,
			RetryBackoff:      500 * time.Millisecond,
			RequestTimeout:    10 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Catalog: CatalogConfig{
			Driver:     DriverSpotify,
			SQLitePath: "soundalike.db",
		},
		Recommend: RecommendConfig{
			DefaultCount:   10,
			MaxCount:       50,
			Timeout:        30 * time.Second,
			MaxConcurrency: 4,
			PoolSize:       0,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Default returns the built-in defaults without reading any file or environment.
func Default() *Config {
	return defaultConfig()
}
