package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/services"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func year(t domain.Track) string {
	if y, ok := domain.ReleaseYear(t.ReleaseDate); ok {
		return strconv.Itoa(y)
	}
	return "-"
}

// printRecommendation renders the seed followed by a ranked table.
func printRecommendation(w io.Writer, rec services.Recommendation) error {
	fmt.Fprintf(w, "Seed: %s - %s (%s)\n\n", rec.Seed.Name, rec.Seed.Artist, year(rec.Seed))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTRACK\tARTIST\tYEAR\tPOP\tLENGTH\tMATCH")
	for i, rt := range rec.Tracks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%.1f%%\n",
			i+1, rt.Name, rt.Artist, year(rt.Track), rt.Popularity, domain.FormatDuration(rt.DurationMs), rt.Percent())
	}
	return tw.Flush()
}

// printTracks renders an unranked track table.
func printTracks(w io.Writer, tracks []domain.Track) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTRACK\tARTIST\tYEAR\tPOP\tLENGTH")
	for i, t := range tracks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			i+1, t.Name, t.Artist, year(t), t.Popularity, domain.FormatDuration(t.DurationMs))
	}
	return tw.Flush()
}

// explainEmpty turns the "nothing came back" error kinds into a message for
// the user. It returns false for any other error.
func explainEmpty(w io.Writer, err error) bool {
	switch domain.KindOf(err) {
	case domain.EmptyAfterFilter:
		fmt.Fprintln(w, "No tracks match the filters. Try widening --popularity or --years.")
	case domain.NoCandidatesFound, domain.EmptyPool:
		fmt.Fprintln(w, "No similar tracks found.")
	default:
		return false
	}
	return true
}
