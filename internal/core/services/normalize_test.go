package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

func TestNormalize_MapsFields(t *testing.T) {
	raw := ports.RawTrack{
		ID:   "t1",
		Name: "Song",
		Artists: []ports.RawArtistRef{
			{ID: "a1", Name: "First"},
			{ID: "a2", Name: "Second"},
		},
		Album: ports.RawAlbum{
			Name:        "Album",
			ReleaseDate: "1999-03",
			Images:      []ports.RawImage{{URL: "https://img/big"}, {URL: "https://img/small"}},
		},
		Popularity:   64,
		DurationMs:   183000,
		PreviewURL:   "https://preview",
		ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/track/t1"},
	}
	want := domain.AudioFeatures{
		Danceability: 0.8, Energy: 0.7, Valence: 0.6, Tempo: 120, Acousticness: 0.1,
		Liveness: 0.1, Instrumentalness: 0, Loudness: -5, Speechiness: 0.05, Key: 7, Mode: 0,
	}

	got, err := Normalize(raw, rawFeatures(want))
	require.NoError(t, err)

	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, "Song", got.Name)
	assert.Equal(t, "First, Second", got.Artist)
	assert.Equal(t, []string{"a1", "a2"}, got.ArtistIDs)
	assert.Equal(t, "Album", got.Album)
	assert.Equal(t, "https://img/big", got.ImageURL)
	assert.Equal(t, "https://preview", got.PreviewURL)
	assert.Equal(t, 64, got.Popularity)
	assert.Equal(t, "1999-03", got.ReleaseDate)
	assert.Equal(t, 183000, got.DurationMs)
	assert.Equal(t, "https://open.spotify.com/track/t1", got.ExternalURL)
	assert.Equal(t, want, got.Features)
}

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		features *ports.RawFeatures
		want     func(f *domain.AudioFeatures)
	}{
		{
			name:     "absent analysis",
			features: nil,
			want:     func(*domain.AudioFeatures) {},
		},
		{
			name:     "empty analysis",
			features: &ports.RawFeatures{},
			want:     func(*domain.AudioFeatures) {},
		},
		{
			name:     "partial analysis",
			features: &ports.RawFeatures{Energy: ptr(0.9), Tempo: ptr(95.0)},
			want: func(f *domain.AudioFeatures) {
				f.Energy = 0.9
				f.Tempo = 95
			},
		},
		{
			name:     "unknown key and invalid mode",
			features: &ports.RawFeatures{Key: ptr(-1), Mode: ptr(3)},
			want:     func(*domain.AudioFeatures) {},
		},
		{
			name:     "zero values are kept",
			features: &ports.RawFeatures{Instrumentalness: ptr(0.0), Mode: ptr(0)},
			want: func(f *domain.AudioFeatures) {
				f.Instrumentalness = 0
				f.Mode = 0
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := domain.DefaultFeatures()
			tc.want(&want)

			got, err := Normalize(rawTrack("t1", "Song", "a1"), tc.features)
			require.NoError(t, err)
			assert.Equal(t, want, got.Features)
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  ports.RawTrack
	}{
		{"missing id", rawTrack("", "Song", "a1")},
		{"blank id", rawTrack("   ", "Song", "a1")},
		{"missing name", rawTrack("t1", "", "a1")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.raw, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedRecord))
		})
	}
}

func TestNormalize_ClampsRanges(t *testing.T) {
	raw := rawTrack("t1", "Song")
	raw.Popularity = 140
	raw.DurationMs = -5

	got, err := Normalize(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, 100, got.Popularity)
	assert.Equal(t, 0, got.DurationMs)
	assert.Empty(t, got.ArtistIDs)
	assert.Empty(t, got.PrimaryArtistID())
}
