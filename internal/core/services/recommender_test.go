package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

func recommenderCatalog() *fakeCatalog {
	c := populatedCatalog()
	seedRaw := rawTrack("seed", "Seed Song", "art1")
	seedRaw.Artists[0].Name = "Artist One"
	c.search["seed song"] = []ports.RawTrack{seedRaw}
	c.features["seed"] = rawFeatures(seedFeatures())
	c.features["a2"] = rawFeatures(seedFeatures())
	return c
}

func TestRecommender_Recommend(t *testing.T) {
	c := recommenderCatalog()
	r := NewRecommender(c, Options{})

	rec, err := r.Recommend(context.Background(), "  seed song ", 3, domain.FilterSpec{})
	require.NoError(t, err)

	assert.Equal(t, "seed", rec.Seed.ID)
	assert.Equal(t, "Artist One", rec.Seed.Artist)
	require.Len(t, rec.Tracks, 3)
	assert.Equal(t, "a2", rec.Tracks[0].ID, "candidate with the seed's features ranks first")
	assert.InDelta(t, 1.0, rec.Tracks[0].Similarity, 1e-9)
	for i := 1; i < len(rec.Tracks); i++ {
		assert.GreaterOrEqual(t, rec.Tracks[i-1].Similarity, rec.Tracks[i].Similarity)
	}
	assert.Len(t, rec.Stats, len(domain.SimilarityFeatures))
	assert.Equal(t, []int{1, 20}, c.searchLimits)
}

func TestRecommender_SeedErrors(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		setup     func(c *fakeCatalog)
		wantKind  domain.ErrorKind
		wantCalls bool
	}{
		{
			name:     "empty query",
			query:    "   ",
			setup:    func(*fakeCatalog) {},
			wantKind: domain.SeedNotFound,
		},
		{
			name:      "no hits",
			query:     "nothing like this",
			setup:     func(*fakeCatalog) {},
			wantKind:  domain.SeedNotFound,
			wantCalls: true,
		},
		{
			name:      "catalog failure is not a missing seed",
			query:     "seed song",
			setup:     func(c *fakeCatalog) { c.searchErr = errors.New("down") },
			wantKind:  domain.KindUnknown,
			wantCalls: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := recommenderCatalog()
			tc.setup(c)

			_, err := NewRecommender(c, Options{}).Recommend(context.Background(), tc.query, 5, domain.FilterSpec{})
			require.Error(t, err)
			assert.Equal(t, tc.wantKind, domain.KindOf(err))
			assert.Equal(t, tc.wantCalls, c.totalCalls() > 0)
		})
	}
}

func TestRecommender_EmptyAfterFilter(t *testing.T) {
	r := NewRecommender(recommenderCatalog(), Options{})
	filter := domain.FilterSpec{Popularity: &domain.Range{Min: 80, Max: 100}}

	rec, err := r.Recommend(context.Background(), "seed song", 5, filter)
	require.Error(t, err)

	assert.True(t, errors.Is(err, domain.ErrEmptyAfterFilter))
	assert.Equal(t, "seed", rec.Seed.ID)
	assert.Empty(t, rec.Tracks)
}

func TestRecommender_NoCandidates(t *testing.T) {
	c := newFakeCatalog()

	_, err := NewRecommender(c, Options{}).RecommendForSeed(context.Background(), testSeed(), 5, domain.FilterSpec{})
	require.Error(t, err)
	assert.Equal(t, domain.NoCandidatesFound, domain.KindOf(err))
}

func TestRecommender_CountBounds(t *testing.T) {
	r := NewRecommender(recommenderCatalog(), Options{DefaultCount: 2, MaxCount: 4})

	tests := []struct {
		n    int
		want int
	}{
		{0, 2},
		{-3, 2},
		{3, 3},
		{40, 4},
	}
	for _, tc := range tests {
		rec, err := r.RecommendForSeed(context.Background(), testSeed(), tc.n, domain.FilterSpec{})
		require.NoError(t, err)
		assert.Len(t, rec.Tracks, tc.want, "n=%d", tc.n)
	}
}

func TestRecommender_PoolSize(t *testing.T) {
	r := NewRecommender(recommenderCatalog(), Options{PoolSize: 2})

	rec, err := r.RecommendForSeed(context.Background(), testSeed(), 10, domain.FilterSpec{})
	require.NoError(t, err)
	assert.Len(t, rec.Tracks, 2)
}

func TestRecommender_RecommendByMood(t *testing.T) {
	c := newFakeCatalog()
	c.search["party dance club edm"] = workoutHits(10)
	r := NewRecommender(c, Options{MaxCount: 3})

	got, err := r.RecommendByMood(context.Background(), "PARTY", 25, domain.FilterSpec{})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = r.RecommendByMood(context.Background(), "angry", 5, domain.FilterSpec{})
	assert.Equal(t, domain.InvalidMood, domain.KindOf(err))
}

func TestRecommender_FilterSeesWholePoolByDefault(t *testing.T) {
	c := newFakeCatalog()
	var top []ports.RawTrack
	for i := range 15 {
		top = append(top, rawTrack(fmt.Sprintf("a%d", i), "A", "art1"))
	}
	c.topTracks["art1"] = top
	for i := range 5 {
		id := fmt.Sprintf("r%d", i)
		c.related["art1"] = append(c.related["art1"], ports.RawArtist{ID: id, Name: id})
		for j := range 4 {
			c.topTracks[id] = append(c.topTracks[id], rawTrack(fmt.Sprintf("%s-%d", id, j), "R", id))
		}
	}
	var hits []ports.RawTrack
	for i := range 20 {
		hit := rawTrack(fmt.Sprintf("s%d", i), "S", "x")
		if i >= 15 {
			hit.Popularity = 95
		}
		hits = append(hits, hit)
	}
	c.search["Seed Song Artist One"] = hits

	filter := domain.FilterSpec{Popularity: &domain.Range{Min: 80, Max: 100}}
	rec, err := NewRecommender(c, Options{}).RecommendForSeed(context.Background(), testSeed(), 10, filter)
	require.NoError(t, err)

	ids := make([]string, len(rec.Tracks))
	for i, rt := range rec.Tracks {
		ids[i] = rt.ID
	}
	assert.ElementsMatch(t, []string{"s15", "s16", "s17", "s18", "s19"}, ids)
}
