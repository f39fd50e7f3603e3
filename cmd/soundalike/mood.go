package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
)

func moodNames() string {
	moods := domain.Moods()
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

var moodCmd = &cobra.Command{
	Use:   "mood <label>",
	Short: "List tracks for a mood",
	Long: fmt.Sprintf(`List tracks that fit a mood. Supported moods: %s.

Examples:
  soundalike mood happy
  soundalike mood workout --count 20 --years 2018-2024`, moodNames()),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := domain.ParseMood(args[0]); err != nil {
			return fmt.Errorf("%w (supported: %s)", err, moodNames())
		}

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

		tracks, err := svc.RecommendByMood(ctx, args[0], count, filter)
		out := cmd.OutOrStdout()
		if err != nil {
			if explainEmpty(out, err) {
				return nil
			}
			return err
		}

		if output == "json" {
			return printJSON(out, tracks)
		}
		return printTracks(out, tracks)
	},
}

func init() {
	moodCmd.Flags().IntP("count", "n", 10, "Number of tracks (1-50)")
	moodCmd.Flags().String("popularity", "", "Popularity range, e.g. 50-100")
	moodCmd.Flags().String("years", "", "Release year range, e.g. 2015-2020")
}
