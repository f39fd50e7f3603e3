package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundalike/internal/catalog"
	"github.com/ewilliams-labs/soundalike/internal/config"
	"github.com/ewilliams-labs/soundalike/internal/core/services"
	"github.com/ewilliams-labs/soundalike/internal/logging"
)

var (
	configPath string
	driver     string
	dbPath     string
	output     = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "soundalike",
	Short: "soundalike - find songs that sound like the one you love",
	Long: `soundalike recommends tracks by comparing audio features such as
energy, valence and tempo. It can query the live catalog or an offline
SQLite snapshot imported with "soundalike import". Logs are written to
stderr in console form whatever log.format says.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if output != "text" && output != "json" {
			return fmt.Errorf("--output must be text or json, got %q", output)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Catalog driver: spotify or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite snapshot path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", output, "Output format: text or json")

	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(importCmd)
}

// loadConfig applies the persistent flags on top of file and environment config.
func loadConfig(forceDriver string) (*config.Config, error) {
	cfg, err := config.Load(configPath, func(c *config.Config) {
		if driver != "" {
			c.Catalog.Driver = driver
		}
		if forceDriver != "" {
			c.Catalog.Driver = forceDriver
		}
		if dbPath != "" {
			c.Catalog.SQLitePath = dbPath
		}
	})
	if err != nil {
		return nil, err
	}
	// stdout carries command output; log.format is ignored and logs always go
	// to stderr in console form. Only log.level applies.
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: "console", Output: os.Stderr})
	return cfg, nil
}

// newRecommender opens the configured catalog. The returned func closes it.
func newRecommender(ctx context.Context) (*services.Recommender, func() error, error) {
	cfg, err := loadConfig("")
	if err != nil {
		return nil, nil, err
	}
	cat, closeFn, err := catalog.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return services.NewRecommender(cat, catalog.RecommenderOptions(cfg)), closeFn, nil
}

func runContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithRequestID(ctx, logging.NewRequestID())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
