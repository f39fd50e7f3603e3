package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSpotifyCreds(t *testing.T) {
	t.Helper()
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	setSpotifyCreds(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "US", cfg.Spotify.Market)
	assert.Equal(t, 500*time.Millisecond, cfg.Spotify.RetryBackoff)
	assert.Equal(t, DriverSpotify, cfg.Catalog.Driver)
	assert.Equal(t, 10, cfg.Recommend.DefaultCount)
	assert.Equal(t, "id", cfg.Spotify.ClientID)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
catalog:
  driver: sqlite
  sqlite_path: /tmp/catalog.db
recommend:
  default_count: 5
  timeout: 5s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("RECOMMEND_DEFAULT_COUNT", "7")
	t.Setenv("SPOTIFY_MARKET", "GB")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Catalog.Driver)
	assert.Equal(t, "/tmp/catalog.db", cfg.Catalog.SQLitePath)
	assert.Equal(t, 7, cfg.Recommend.DefaultCount, "env overrides file")
	assert.Equal(t, 5*time.Second, cfg.Recommend.Timeout)
	assert.Equal(t, "GB", cfg.Spotify.Market)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid spotify",
			mutate: func(c *Config) { c.Spotify.ClientID, c.Spotify.ClientSecret = "a", "b" },
		},
		{
			name:   "valid sqlite without credentials",
			mutate: func(c *Config) { c.Catalog.Driver = DriverSQLite },
		},
		{
			name:    "spotify without credentials",
			mutate:  func(c *Config) {},
			wantErr: "client_secret are required",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Catalog.Driver = "postgres" },
			wantErr: "catalog.driver",
		},
		{
			name: "default count above max",
			mutate: func(c *Config) {
				c.Catalog.Driver = DriverSQLite
				c.Recommend.DefaultCount = 60
			},
			wantErr: "recommend.default_count",
		},
		{
			name: "negative pool size",
			mutate: func(c *Config) {
				c.Catalog.Driver = DriverSQLite
				c.Recommend.PoolSize = -1
			},
			wantErr: "recommend.pool_size",
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.Catalog.Driver = DriverSQLite
				c.Log.Level = "loud"
			},
			wantErr: "log.level",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "spotify.client_id", envTransformFunc("SPOTIFY_CLIENT_ID"))
	assert.Equal(t, "catalog.driver", envTransformFunc("CATALOG_DRIVER"))
	assert.Empty(t, envTransformFunc("HOME"))
}

func TestLoad_OverridesRunBeforeValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")

	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalidConfig)

	cfg, err := Load("", func(c *Config) {
		c.Catalog.Driver = DriverSQLite
		c.Catalog.SQLitePath = "offline.db"
	})
	require.NoError(t, err)
	assert.Equal(t, "offline.db", cfg.Catalog.SQLitePath)
	assert.Zero(t, cfg.Recommend.PoolSize, "no cap before filtering by default")
}
