package domain

import (
	"fmt"
	"strings"
	"time"
)

// Range is an inclusive integer range.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether Min <= v <= Max. A range with Min > Max contains nothing.
func (r Range) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// FilterSpec constrains a candidate pool. A nil range is not applied.
type FilterSpec struct {
	Popularity *Range
	Year       *Range
}

// IsZero reports whether the filter has no constraints.
func (s FilterSpec) IsZero() bool {
	return s.Popularity == nil && s.Year == nil
}

func (s FilterSpec) String() string {
	var parts []string
	if s.Popularity != nil {
		parts = append(parts, "popularity "+s.Popularity.String())
	}
	if s.Year != nil {
		parts = append(parts, "year "+s.Year.String())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether a single track passes every constraint. Tracks
// whose release date cannot be parsed never pass a year constraint.
func (s FilterSpec) Matches(t Track) bool {
	if s.Popularity != nil && !s.Popularity.Contains(t.Popularity) {
		return false
	}
	if s.Year != nil {
		year, ok := ReleaseYear(t.ReleaseDate)
		if !ok || !s.Year.Contains(year) {
			return false
		}
	}
	return true
}

// Filter returns the tracks of the pool that match spec. An empty result is
// not an error; the caller decides whether to relax the filters.
func (p CandidatePool) Filter(spec FilterSpec) CandidatePool {
	if spec.IsZero() {
		return p.Where(func(Track) bool { return true })
	}
	return p.Where(spec.Matches)
}

var releaseDateLayouts = map[int]string{
	len("2006"):       "2006",
	len("2006-01"):    "2006-01",
	len("2006-01-02"): "2006-01-02",
}

// ReleaseYear extracts the year from a release date with year, month or day
// precision. It returns false for anything else.
func ReleaseYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	layout, ok := releaseDateLayouts[len(date)]
	if !ok {
		return 0, false
	}
	parsed, err := time.Parse(layout, date)
	if err != nil {
		return 0, false
	}
	return parsed.Year(), true
}
