package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
	"github.com/ewilliams-labs/soundalike/internal/logging"
	"github.com/ewilliams-labs/soundalike/internal/metrics"
)

// Options tunes a Recommender. Zero values select the defaults.
type Options struct {
	Market         string
	MaxConcurrency int
	PoolSize       int           // candidates kept after aggregation, 0 = all
	DefaultCount   int           // used when a request asks for n <= 0
	MaxCount       int           // upper bound on n
	Timeout        time.Duration // per request, 0 = none
}

const (
	DefaultCount    = 10
	MaxCount        = 50
	DefaultPoolSize = 0 // no cap
)

// Recommendation is the result of a seed-based request.
type Recommendation struct {
	Seed   domain.Track
	Tracks []domain.RankedTrack
	Stats  map[string]domain.FeatureSummary
}

// Recommender is the entry point used by the presentation adapters. It wires
// seed resolution, aggregation, filtering and ranking over one catalog.
type Recommender struct {
	catalog    ports.Catalog
	aggregator *Aggregator
	moods      *MoodRecommender
	opts       Options
}

func NewRecommender(catalog ports.Catalog, opts Options) *Recommender {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = DefaultCount
	}
	if opts.MaxCount <= 0 {
		opts.MaxCount = MaxCount
	}
	if opts.PoolSize < 0 {
		opts.PoolSize = 0
	}
	return &Recommender{
		catalog:    catalog,
		aggregator: NewAggregator(catalog, WithMarket(opts.Market), WithMaxConcurrency(opts.MaxConcurrency)),
		moods:      NewMoodRecommender(catalog),
		opts:       opts,
	}
}

func (r *Recommender) count(n int) int {
	if n <= 0 {
		return r.opts.DefaultCount
	}
	return min(n, r.opts.MaxCount)
}

func (r *Recommender) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.Timeout)
}

// ResolveSeed turns a free-text query into a seed track using the first search hit.
func (r *Recommender) ResolveSeed(ctx context.Context, query string) (domain.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Track{}, domain.NewError(domain.SeedNotFound, "resolve seed", "empty query", nil)
	}

	raws, err := r.catalog.SearchTracks(ctx, query, 1)
	if err != nil {
		return domain.Track{}, fmt.Errorf("service: resolve seed %q: %w", query, err)
	}
	seeds, err := enrich(ctx, r.catalog, "seed", raws, 1)
	if err != nil {
		return domain.Track{}, fmt.Errorf("service: resolve seed %q: %w", query, err)
	}
	if len(seeds) == 0 {
		return domain.Track{}, domain.NewError(domain.SeedNotFound, "resolve seed", query, nil)
	}
	return seeds[0], nil
}

// Recommend resolves query to a seed and returns up to n similar tracks.
func (r *Recommender) Recommend(ctx context.Context, query string, n int, filter domain.FilterSpec) (Recommendation, error) {
	defer metrics.ObserveRecommend("similar", time.Now())
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	seed, err := r.ResolveSeed(ctx, query)
	if err != nil {
		return Recommendation{}, err
	}
	logging.Ctx(ctx).Info().Str("seed_id", seed.ID).Str("seed", seed.Name+" - "+seed.Artist).Msg("resolved seed")
	return r.recommendForSeed(ctx, seed, n, filter)
}

// RecommendForSeed returns up to n tracks similar to an already resolved seed.
// An empty filtered pool is reported as EmptyAfterFilter, distinct from
// NoCandidatesFound, so callers can suggest relaxing the filters.
func (r *Recommender) RecommendForSeed(ctx context.Context, seed domain.Track, n int, filter domain.FilterSpec) (Recommendation, error) {
	defer metrics.ObserveRecommend("seed", time.Now())
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.recommendForSeed(ctx, seed, n, filter)
}

func (r *Recommender) recommendForSeed(ctx context.Context, seed domain.Track, n int, filter domain.FilterSpec) (Recommendation, error) {
	rec := Recommendation{Seed: seed}

	pool, err := r.aggregator.Aggregate(ctx, seed, r.opts.PoolSize)
	if err != nil {
		return rec, err
	}

	filtered := pool.Filter(filter)
	if filtered.IsEmpty() {
		return rec, domain.NewError(domain.EmptyAfterFilter, "recommend", filter.String(), nil)
	}

	ranked, err := Rank(seed, filtered, r.count(n))
	if err != nil {
		return rec, err
	}

	tracks := make([]domain.Track, len(ranked))
	for i, rt := range ranked {
		tracks[i] = rt.Track
	}
	rec.Tracks = ranked
	rec.Stats = domain.FeatureStats(tracks)

	logging.Ctx(ctx).Info().
		Str("seed_id", seed.ID).
		Int("pool", pool.Len()).
		Int("filtered", filtered.Len()).
		Int("returned", len(ranked)).
		Msg("recommendations ready")
	return rec, nil
}

// RecommendByMood returns up to n tracks for a mood label.
func (r *Recommender) RecommendByMood(ctx context.Context, mood string, n int, filter domain.FilterSpec) ([]domain.Track, error) {
	defer metrics.ObserveRecommend("mood", time.Now())
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.moods.RecommendByMoodFiltered(ctx, mood, r.count(n), filter)
}
