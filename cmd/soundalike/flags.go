package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
)

// parseRange reads "MIN-MAX" or a single value meaning MIN-MIN. An empty
// string is no constraint. MIN > MAX is a usage error here, though the core
// would accept it as a range that matches nothing.
func parseRange(flag, s string) (*domain.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	lo, hi, found := strings.Cut(s, "-")
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return nil, fmt.Errorf("--%s: %q is not a number", flag, lo)
	}
	to := from
	if found {
		if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
			return nil, fmt.Errorf("--%s: %q is not a number", flag, hi)
		}
	}
	if from > to {
		return nil, fmt.Errorf("--%s: min %d is greater than max %d", flag, from, to)
	}
	return &domain.Range{Min: from, Max: to}, nil
}

func parseFilter(popularity, years string) (domain.FilterSpec, error) {
	pop, err := parseRange("popularity", popularity)
	if err != nil {
		return domain.FilterSpec{}, err
	}
	if pop != nil && (pop.Min < 0 || pop.Max > 100) {
		return domain.FilterSpec{}, fmt.Errorf("--popularity must be within 0-100")
	}
	year, err := parseRange("years", years)
	if err != nil {
		return domain.FilterSpec{}, err
	}
	return domain.FilterSpec{Popularity: pop, Year: year}, nil
}
