package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundalike/internal/adapters/sqlite"
	"github.com/ewilliams-labs/soundalike/internal/config"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Load a catalog snapshot into the SQLite database",
	Long: `Import a JSON catalog snapshot (tracks, audio features, artists and
related artists) into the SQLite database used by --driver sqlite.
Re-importing a track replaces it.

Examples:
  soundalike import snapshot.json
  soundalike import snapshot.json --db ./catalog.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(config.DriverSQLite)
		if err != nil {
			return err
		}

		adapter, err := sqlite.NewAdapter(cfg.Catalog.SQLitePath)
		if err != nil {
			return err
		}
		defer adapter.Close()

		stats, err := adapter.ImportFile(runContext(cmd), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if output == "json" {
			return printJSON(out, stats)
		}
		fmt.Fprintf(out, "Imported %d tracks, %d feature sets, %d artists, %d related links into %s (%d skipped)\n",
			stats.Tracks, stats.Features, stats.Artists, stats.Related, cfg.Catalog.SQLitePath, stats.Skipped)
		return nil
	},
}
