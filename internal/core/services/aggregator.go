package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
	"github.com/ewilliams-labs/soundalike/internal/logging"
	"github.com/ewilliams-labs/soundalike/internal/metrics"
)

// Strategy names, in merge order.
const (
	StrategyArtist  = "artist"
	StrategyRelated = "related"
	StrategySearch  = "search"
)

const (
	DefaultMarket         = "US"
	DefaultMaxConcurrency = 4

	artistTopTracksLimit   = 15
	relatedArtistsLimit    = 5
	relatedTracksPerArtist = 4
	relatedTracksCap       = 25
	searchLimit            = 20
)

var errNoPrimaryArtist = errors.New("seed has no artist id")

// Aggregator gathers candidates for a seed from several catalog strategies.
type Aggregator struct {
	catalog        ports.Catalog
	market         string
	maxConcurrency int
}

type AggregatorOption func(*Aggregator)

// WithMarket sets the market used for top-track lookups.
func WithMarket(market string) AggregatorOption {
	return func(a *Aggregator) {
		if market != "" {
			a.market = market
		}
	}
}

// WithMaxConcurrency bounds the number of in-flight strategy and per-artist fetches.
func WithMaxConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxConcurrency = n
		}
	}
}

func NewAggregator(catalog ports.Catalog, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		catalog:        catalog,
		market:         DefaultMarket,
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type strategy struct {
	name  string
	fetch func(ctx context.Context, seed domain.Track) ([]ports.RawTrack, error)
}

func (a *Aggregator) strategies() []strategy {
	return []strategy{
		{name: StrategyArtist, fetch: a.fetchArtist},
		{name: StrategyRelated, fetch: a.fetchRelated},
		{name: StrategySearch, fetch: a.fetchSearch},
	}
}

// Aggregate runs every strategy concurrently and merges their tracks in
// strategy order. The seed itself and duplicate IDs are removed, first
// occurrence wins, and the result is cut to targetPoolSize when positive.
// Failing strategies are logged and skipped; only an empty merge is an error.
func (a *Aggregator) Aggregate(ctx context.Context, seed domain.Track, targetPoolSize int) (domain.CandidatePool, error) {
	strategies := a.strategies()
	results := make([]domain.CandidatePool, len(strategies))

	var g errgroup.Group
	g.SetLimit(a.maxConcurrency)
	for i, s := range strategies {
		g.Go(func() error {
			results[i] = a.run(ctx, s, seed)
			return nil
		})
	}
	_ = g.Wait()

	pool := domain.Merge(results...).Without(seed.ID)
	if pool.IsEmpty() {
		var cause error
		if err := ctx.Err(); err != nil {
			cause = err
		}
		return domain.CandidatePool{}, domain.NewError(domain.NoCandidatesFound, "aggregate", "seed "+seed.ID, cause)
	}

	logging.Ctx(ctx).Debug().Str("seed_id", seed.ID).Int("candidates", pool.Len()).Msg("aggregated candidates")
	return pool.Limit(targetPoolSize), nil
}

func (a *Aggregator) run(ctx context.Context, s strategy, seed domain.Track) domain.CandidatePool {
	log := logging.Ctx(ctx).With().Str("strategy", s.name).Str("seed_id", seed.ID).Logger()

	raws, err := s.fetch(ctx, seed)
	if err != nil {
		err = domain.NewError(domain.StrategyFailed, "aggregate", s.name, err)
		log.Warn().Err(err).Msg("strategy failed")
		metrics.RecordStrategy(s.name, metrics.OutcomeError)
		return domain.CandidatePool{}
	}

	tracks, err := enrich(ctx, a.catalog, s.name, raws, 0)
	if err != nil {
		err = domain.NewError(domain.StrategyFailed, "aggregate", s.name, err)
		log.Warn().Err(err).Msg("strategy failed")
		metrics.RecordStrategy(s.name, metrics.OutcomeError)
		return domain.CandidatePool{}
	}

	pool := domain.NewCandidatePool(tracks...)
	if pool.IsEmpty() {
		log.Warn().Int("raw", len(raws)).Msg("strategy returned no usable tracks")
		metrics.RecordStrategy(s.name, metrics.OutcomeEmpty)
		return pool
	}

	log.Debug().Int("tracks", pool.Len()).Msg("strategy done")
	metrics.RecordStrategy(s.name, metrics.OutcomeSuccess)
	return pool
}

func (a *Aggregator) fetchArtist(ctx context.Context, seed domain.Track) ([]ports.RawTrack, error) {
	artistID := seed.PrimaryArtistID()
	if artistID == "" {
		return nil, errNoPrimaryArtist
	}
	tracks, err := a.catalog.GetArtistTopTracks(ctx, artistID, a.market, artistTopTracksLimit)
	if err != nil {
		return nil, err
	}
	return head(tracks, artistTopTracksLimit), nil
}

// fetchRelated takes the top tracks of the first few related artists. The
// per-artist lookups run concurrently but are merged in related-artist order.
func (a *Aggregator) fetchRelated(ctx context.Context, seed domain.Track) ([]ports.RawTrack, error) {
	artistID := seed.PrimaryArtistID()
	if artistID == "" {
		return nil, errNoPrimaryArtist
	}
	related, err := a.catalog.GetRelatedArtists(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("related artists: %w", err)
	}
	related = head(related, relatedArtistsLimit)

	perArtist := make([][]ports.RawTrack, len(related))
	var g errgroup.Group
	g.SetLimit(a.maxConcurrency)
	for i, artist := range related {
		g.Go(func() error {
			tracks, err := a.catalog.GetArtistTopTracks(ctx, artist.ID, a.market, relatedTracksPerArtist)
			if err != nil {
				logging.Ctx(ctx).Debug().Err(err).Str("artist_id", artist.ID).Msg("related artist top tracks failed")
				return nil
			}
			perArtist[i] = head(tracks, relatedTracksPerArtist)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("related artists: %w", err)
	}

	out := make([]ports.RawTrack, 0, relatedTracksCap)
	for _, tracks := range perArtist {
		for _, t := range tracks {
			if len(out) == relatedTracksCap {
				return out, nil
			}
			out = append(out, t)
		}
	}
	return out, nil
}

func (a *Aggregator) fetchSearch(ctx context.Context, seed domain.Track) ([]ports.RawTrack, error) {
	query := strings.TrimSpace(seed.Name + " " + seed.Artist)
	if query == "" {
		return nil, errors.New("seed has no name or artist to search for")
	}
	tracks, err := a.catalog.SearchTracks(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	return head(tracks, searchLimit), nil
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
