package ports

import (
	"context"
)

// RawArtistRef is an artist as embedded in a catalog track.
type RawArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawImage is an album artwork entry, largest first.
type RawImage struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// RawAlbum is the album section of a catalog track.
type RawAlbum struct {
	Name        string     `json:"name"`
	ReleaseDate string     `json:"release_date"`
	Images      []RawImage `json:"images"`
}

// RawTrack is a track as returned by a catalog, before normalization.
type RawTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []RawArtistRef    `json:"artists"`
	Album        RawAlbum          `json:"album"`
	Popularity   int               `json:"popularity"`
	DurationMs   int               `json:"duration_ms"`
	PreviewURL   string            `json:"preview_url,omitempty"`
	ExternalURLs map[string]string `json:"external_urls,omitempty"`
}

// RawFeatures is a catalog audio analysis. A nil field was not reported.
type RawFeatures struct {
	Danceability     *float64 `json:"danceability"`
	Energy           *float64 `json:"energy"`
	Valence          *float64 `json:"valence"`
	Tempo            *float64 `json:"tempo"`
	Acousticness     *float64 `json:"acousticness"`
	Liveness         *float64 `json:"liveness"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Loudness         *float64 `json:"loudness"`
	Speechiness      *float64 `json:"speechiness"`
	Key              *int     `json:"key"`
	Mode             *int     `json:"mode"`
}

// RawArtist is a full artist object, as returned by related-artist lookups.
type RawArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres,omitempty"`
	Popularity int      `json:"popularity"`
}

// Catalog is the read-only music catalog the recommender queries.
type Catalog interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]RawTrack, error)
	// GetAudioFeatures returns nil, nil when the catalog has no analysis for the track.
	GetAudioFeatures(ctx context.Context, trackID string) (*RawFeatures, error)
	GetArtistTopTracks(ctx context.Context, artistID, market string, limit int) ([]RawTrack, error)
	GetRelatedArtists(ctx context.Context, artistID string) ([]RawArtist, error)
}
