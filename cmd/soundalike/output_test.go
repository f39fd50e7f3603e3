package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/services"
)

func TestPrintRecommendation(t *testing.T) {
	rec := services.Recommendation{
		Seed: domain.Track{Name: "Blinding Lights", Artist: "The Weeknd", ReleaseDate: "2019-11-29"},
		Tracks: []domain.RankedTrack{
			{Track: domain.Track{Name: "Starboy", Artist: "The Weeknd", ReleaseDate: "2016", Popularity: 92, DurationMs: 230000}, Similarity: 0.934},
			{Track: domain.Track{Name: "Odd", Artist: "X", ReleaseDate: "bad", Popularity: 5, DurationMs: 61000}, Similarity: -0.4},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printRecommendation(&buf, rec))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Seed: Blinding Lights - The Weeknd (2019)", lines[0])
	assert.Equal(t, []string{"#", "TRACK", "ARTIST", "YEAR", "POP", "LENGTH", "MATCH"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"1", "Starboy", "The", "Weeknd", "2016", "92", "3:50", "93.4%"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"2", "Odd", "X", "-", "5", "1:01", "0.0%"}, strings.Fields(lines[4]))
}

func TestPrintTracks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTracks(&buf, []domain.Track{
		{Name: "Happy", Artist: "Pharrell", ReleaseDate: "2013-11-21", Popularity: 80, DurationMs: 233000},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"1", "Happy", "Pharrell", "2013", "80", "3:53"}, strings.Fields(lines[1]))
}

func TestExplainEmpty(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		handled bool
		want    string
	}{
		{name: "filters", err: domain.NewError(domain.EmptyAfterFilter, "recommend", "", nil), handled: true, want: "widening"},
		{name: "no candidates", err: domain.NewError(domain.NoCandidatesFound, "aggregate", "", nil), handled: true, want: "No similar tracks"},
		{name: "other", err: errors.New("boom"), handled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.handled, explainEmpty(&buf, tt.err))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
