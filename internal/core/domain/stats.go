package domain

import (
	"fmt"
	"math"
)

// FeatureSummary describes the spread of one feature across a set of tracks.
type FeatureSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// FeatureStats summarizes every similarity feature across tracks. Std is the
// sample standard deviation (n-1), 0 for a single track. Returns nil for no tracks.
func FeatureStats(tracks []Track) map[string]FeatureSummary {
	if len(tracks) == 0 {
		return nil
	}
	stats := make(map[string]FeatureSummary, len(SimilarityFeatures))
	for _, name := range SimilarityFeatures {
		values := make([]float64, len(tracks))
		for i, t := range tracks {
			values[i], _ = t.Features.Get(name)
		}
		stats[name] = summarize(values)
	}
	return stats
}

func summarize(values []float64) FeatureSummary {
	s := FeatureSummary{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(values))
	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			sq += (v - s.Mean) * (v - s.Mean)
		}
		s.Std = math.Sqrt(sq / float64(len(values)-1))
	}
	return s
}

// FormatDuration renders milliseconds as M:SS.
func FormatDuration(durationMs int) string {
	if durationMs < 0 {
		durationMs = 0
	}
	seconds := durationMs / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
