// Package catalog selects and builds the configured catalog backend.
package catalog

import (
	"context"
	"fmt"

	"github.com/ewilliams-labs/soundalike/internal/adapters/spotify"
	"github.com/ewilliams-labs/soundalike/internal/adapters/sqlite"
	"github.com/ewilliams-labs/soundalike/internal/config"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
	"github.com/ewilliams-labs/soundalike/internal/core/services"
	"github.com/ewilliams-labs/soundalike/internal/logging"
)

// Open returns the catalog named by cfg.Catalog.Driver and a func that
// releases it.
func Open(ctx context.Context, cfg *config.Config) (ports.Catalog, func() error, error) {
	switch cfg.Catalog.Driver {
	case config.DriverSpotify:
		logging.Info().Str("base_url", cfg.Spotify.BaseURL).Msg("using spotify catalog")
		return spotify.NewFromConfig(ctx, cfg.Spotify), func() error { return nil }, nil
	case config.DriverSQLite:
		adapter, err := sqlite.NewAdapter(cfg.Catalog.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite catalog: %w", err)
		}
		logging.Info().Str("path", cfg.Catalog.SQLitePath).Msg("using sqlite catalog")
		return adapter, adapter.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog driver: %s", cfg.Catalog.Driver)
	}
}

// RecommenderOptions maps the recommend and spotify sections onto service options.
func RecommenderOptions(cfg *config.Config) services.Options {
	return services.Options{
		Market:         cfg.Spotify.Market,
		MaxConcurrency: cfg.Recommend.MaxConcurrency,
		PoolSize:       cfg.Recommend.PoolSize,
		DefaultCount:   cfg.Recommend.DefaultCount,
		MaxCount:       cfg.Recommend.MaxCount,
		Timeout:        cfg.Recommend.Timeout,
	}
}
