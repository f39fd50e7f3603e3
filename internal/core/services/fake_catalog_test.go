package services

import (
	"context"
	"sync"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

// fakeCatalog is an in-memory ports.Catalog that records its calls.
type fakeCatalog struct {
	mu sync.Mutex

	search      map[string][]ports.RawTrack
	searchErr   error
	topTracks   map[string][]ports.RawTrack
	topErr      map[string]error
	related     map[string][]ports.RawArtist
	relatedErr  error
	features    map[string]*ports.RawFeatures
	featuresErr error
	// onFeatures runs at the start of every GetAudioFeatures call
	onFeatures func(trackID string)

	calls         map[string]int
	searchQueries []string
	searchLimits  []int
	topMarkets    []string
	topLimits     map[string]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		search:    map[string][]ports.RawTrack{},
		topTracks: map[string][]ports.RawTrack{},
		topErr:    map[string]error{},
		related:   map[string][]ports.RawArtist{},
		features:  map[string]*ports.RawFeatures{},
		calls:     map[string]int{},
		topLimits: map[string]int{},
	}
}

func (f *fakeCatalog) record(name string) {
	f.calls[name]++
}

func (f *fakeCatalog) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeCatalog) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]ports.RawTrack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("search")
	f.searchQueries = append(f.searchQueries, query)
	f.searchLimits = append(f.searchLimits, limit)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.search[query], nil
}

func (f *fakeCatalog) GetAudioFeatures(ctx context.Context, trackID string) (*ports.RawFeatures, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("features")
	if f.onFeatures != nil {
		f.onFeatures(trackID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.featuresErr != nil {
		return nil, f.featuresErr
	}
	return f.features[trackID], nil
}

func (f *fakeCatalog) GetArtistTopTracks(ctx context.Context, artistID, market string, limit int) ([]ports.RawTrack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("top_tracks")
	f.topMarkets = append(f.topMarkets, market)
	f.topLimits[artistID] = limit
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.topErr[artistID]; err != nil {
		return nil, err
	}
	return f.topTracks[artistID], nil
}

func (f *fakeCatalog) GetRelatedArtists(ctx context.Context, artistID string) ([]ports.RawArtist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("related")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.relatedErr != nil {
		return nil, f.relatedErr
	}
	return f.related[artistID], nil
}

func rawTrack(id, name string, artistIDs ...string) ports.RawTrack {
	artists := make([]ports.RawArtistRef, len(artistIDs))
	for i, a := range artistIDs {
		artists[i] = ports.RawArtistRef{ID: a, Name: "Artist " + a}
	}
	return ports.RawTrack{
		ID:           id,
		Name:         name,
		Artists:      artists,
		Album:        ports.RawAlbum{Name: "Album", ReleaseDate: "2021-06-01"},
		Popularity:   50,
		DurationMs:   200000,
		ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/track/" + id},
	}
}

func rawFeatures(f domain.AudioFeatures) *ports.RawFeatures {
	return &ports.RawFeatures{
		Danceability:     &f.Danceability,
		Energy:           &f.Energy,
		Valence:          &f.Valence,
		Tempo:            &f.Tempo,
		Acousticness:     &f.Acousticness,
		Liveness:         &f.Liveness,
		Instrumentalness: &f.Instrumentalness,
		Loudness:         &f.Loudness,
		Speechiness:      &f.Speechiness,
		Key:              &f.Key,
		Mode:             &f.Mode,
	}
}

func ptr[T any](v T) *T {
	return &v
}
