package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// Load builds the configuration with precedence overrides > env > file > defaults.
// An explicit path must exist; otherwise CONFIG_PATH and the default paths
// are tried and a missing file is not an error. Overrides run before validation
// so command-line flags can satisfy requirements.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings maps environment variable names (lowercased) to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_addr":                   "server.addr",
	"http_read_header_timeout":    "server.read_header_timeout",
	"http_shutdown_timeout":       "server.shutdown_timeout",
	"spotify_client_id":           "spotify.client_id",
	"spotify_client_secret":       "spotify.client_secret",
	"spotify_base_url":            "spotify.base_url",
	"spotify_token_url":           "spotify.token_url",
	"spotify_market":              "spotify.market",
	"spotify_max_retries":         "spotify.max_retries",
	"spotify_retry_backoff":       "spotify.retry_backoff",
	"spotify_request_timeout":     "spotify.request_timeout",
	"spotify_requests_per_second": "spotify.requests_per_second",
	"spotify_burst":               "spotify.burst",
	"catalog_driver":              "catalog.driver",
	"catalog_sqlite_path":         "catalog.sqlite_path",
	"recommend_default_count":     "recommend.default_count",
	"recommend_max_count":         "recommend.max_count",
	"recommend_timeout":           "recommend.timeout",
	"recommend_max_concurrency":   "recommend.max_concurrency",
	"recommend_pool_size":         "recommend.pool_size",
	"log_level":                   "log.level",
	"log_format":                  "log.format",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
