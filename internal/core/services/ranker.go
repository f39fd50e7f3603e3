package services

import (
	"cmp"
	"slices"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
)

// Rank scores every candidate by cosine similarity to the seed after
// standardizing the seed and candidates together, then returns the top n in
// descending order. Ties keep pool order. n <= 0 returns every candidate.
func Rank(seed domain.Track, pool domain.CandidatePool, n int) ([]domain.RankedTrack, error) {
	if pool.IsEmpty() {
		return nil, domain.NewError(domain.EmptyPool, "rank", "", nil)
	}

	candidates := pool.Tracks()
	m := make(domain.Matrix, 0, len(candidates)+1)
	m = append(m, seed.Features.Vector())
	for _, c := range candidates {
		m = append(m, c.Features.Vector())
	}
	z := m.Standardize()

	ranked := make([]domain.RankedTrack, len(candidates))
	for i, c := range candidates {
		ranked[i] = domain.RankedTrack{
			Track:      c,
			Similarity: domain.CosineSimilarity(z[0], z[i+1]),
		}
	}
	slices.SortStableFunc(ranked, func(a, b domain.RankedTrack) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}
