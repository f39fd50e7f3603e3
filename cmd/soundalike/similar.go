package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundalike/internal/logging"
)

var similarCmd = &cobra.Command{
	Use:   "similar <query>",
	Short: "Find tracks that sound like a song",
	Long: `Resolve a free-text query to a seed track and list the most similar
tracks from the catalog.

Examples:
  soundalike similar "blinding lights the weeknd"
  soundalike similar "midnight city" --count 20 --popularity 50-100 --years 2010-2020`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		popularity, _ := cmd.Flags().GetString("popularity")
		years, _ := cmd.Flags().GetString("years")

		filter, err := parseFilter(popularity, years)
		if err != nil {
			return err
		}

		ctx := runContext(cmd)
		svc, closeFn, err := newRecommender(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		rec, err := svc.Recommend(ctx, strings.Join(args, " "), count, filter)
		out := cmd.OutOrStdout()
		if err != nil {
			if explainEmpty(out, err) {
				return nil
			}
			return err
		}

		logging.Ctx(ctx).Debug().Int("results", len(rec.Tracks)).Msg("similar done")
		if output == "json" {
			return printJSON(out, rec)
		}
		return printRecommendation(out, rec)
	},
}

func init() {
	similarCmd.Flags().IntP("count", "n", 10, "Number of recommendations (1-50)")
	similarCmd.Flags().String("popularity", "", "Popularity range, e.g. 50-100")
	similarCmd.Flags().String("years", "", "Release year range, e.g. 2015-2020")
}
