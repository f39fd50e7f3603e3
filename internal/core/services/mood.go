package services

import (
	"context"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
	"github.com/ewilliams-labs/soundalike/internal/logging"
	"github.com/ewilliams-labs/soundalike/internal/metrics"
)

// DefaultMoodCount is used when a mood request asks for n <= 0 tracks.
const DefaultMoodCount = 10

// MoodRecommender finds tracks for a mood label without a seed.
type MoodRecommender struct {
	catalog ports.Catalog
}

func NewMoodRecommender(catalog ports.Catalog) *MoodRecommender {
	return &MoodRecommender{catalog: catalog}
}

// RecommendByMood searches the mood's query for 2n tracks and returns the
// first n that normalize, in search order. An unknown label fails with
// InvalidMood before any catalog call.
func (m *MoodRecommender) RecommendByMood(ctx context.Context, label string, n int) ([]domain.Track, error) {
	return m.RecommendByMoodFiltered(ctx, label, n, domain.FilterSpec{})
}

// RecommendByMoodFiltered is RecommendByMood with the filter applied to the
// normalized search results before the first n are taken.
func (m *MoodRecommender) RecommendByMoodFiltered(ctx context.Context, label string, n int, filter domain.FilterSpec) ([]domain.Track, error) {
	mood, err := domain.ParseMood(label)
	if err != nil {
		return nil, err
	}
	profile, _ := mood.Profile()
	if n <= 0 {
		n = DefaultMoodCount
	}

	raws, err := m.catalog.SearchTracks(ctx, profile.FallbackQuery, 2*n)
	if err != nil {
		metrics.RecordStrategy("mood", metrics.OutcomeError)
		failed := domain.NewError(domain.StrategyFailed, "mood", string(mood), err)
		return nil, domain.NewError(domain.NoCandidatesFound, "mood", string(mood), failed)
	}

	// without a filter the first n usable hits are the answer, so stop there
	limit := 0
	if filter.IsZero() {
		limit = n
	}
	tracks, err := enrich(ctx, m.catalog, "mood", raws, limit)
	if err != nil {
		metrics.RecordStrategy("mood", metrics.OutcomeError)
		failed := domain.NewError(domain.StrategyFailed, "mood", string(mood), err)
		return nil, domain.NewError(domain.NoCandidatesFound, "mood", string(mood), failed)
	}

	pool := domain.NewCandidatePool(tracks...)
	if pool.IsEmpty() {
		metrics.RecordStrategy("mood", metrics.OutcomeEmpty)
		return nil, domain.NewError(domain.NoCandidatesFound, "mood", string(mood), nil)
	}
	metrics.RecordStrategy("mood", metrics.OutcomeSuccess)

	filtered := pool.Filter(filter)
	if filtered.IsEmpty() {
		return nil, domain.NewError(domain.EmptyAfterFilter, "mood", filter.String(), nil)
	}

	logging.Ctx(ctx).Debug().Str("mood", string(mood)).Int("hits", len(raws)).Int("kept", filtered.Len()).Msg("mood recommendations")
	return filtered.Limit(n).Tracks(), nil
}
