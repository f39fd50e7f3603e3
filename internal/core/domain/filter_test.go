package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func poolWith(tracks ...Track) CandidatePool {
	return NewCandidatePool(tracks...)
}

func TestCandidatePool_Filter(t *testing.T) {
	pool := poolWith(
		Track{ID: "a", Popularity: 90, ReleaseDate: "2019-05-01"},
		Track{ID: "b", Popularity: 40, ReleaseDate: "2001"},
		Track{ID: "c", Popularity: 80, ReleaseDate: "2010-03"},
		Track{ID: "d", Popularity: 100, ReleaseDate: "unknown"},
		Track{ID: "e", Popularity: 0, ReleaseDate: ""},
	)

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{
			name: "no constraints keeps everything",
			spec: FilterSpec{},
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name: "popularity bounds are inclusive",
			spec: FilterSpec{Popularity: &Range{Min: 80, Max: 100}},
			want: []string{"a", "c", "d"},
		},
		{
			name: "year constraint drops unparseable dates",
			spec: FilterSpec{Year: &Range{Min: 2000, Max: 2030}},
			want: []string{"a", "b", "c"},
		},
		{
			name: "year bounds are inclusive",
			spec: FilterSpec{Year: &Range{Min: 2001, Max: 2010}},
			want: []string{"b", "c"},
		},
		{
			name: "both constraints apply",
			spec: FilterSpec{Popularity: &Range{Min: 50, Max: 100}, Year: &Range{Min: 2015, Max: 2020}},
			want: []string{"a"},
		},
		{
			name: "min greater than max yields empty pool",
			spec: FilterSpec{Popularity: &Range{Min: 90, Max: 10}},
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pool.Filter(tc.spec)
			assert.Equal(t, tc.want, got.IDs())
			assert.Equal(t, 5, pool.Len(), "receiver must not change")
		})
	}
}

func TestCandidatePool_FilterIsIdempotent(t *testing.T) {
	pool := poolWith(
		Track{ID: "a", Popularity: 90, ReleaseDate: "2019"},
		Track{ID: "b", Popularity: 20, ReleaseDate: "1999"},
		Track{ID: "c", Popularity: 60, ReleaseDate: "2005-07-11"},
	)
	spec := FilterSpec{Popularity: &Range{Min: 50, Max: 95}, Year: &Range{Min: 2000, Max: 2024}}

	once := pool.Filter(spec)
	twice := once.Filter(spec)

	assert.Equal(t, once.IDs(), twice.IDs())
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date   string
		want   int
		wantOK bool
	}{
		{"2019", 2019, true},
		{"2019-05", 2019, true},
		{"2019-05-31", 2019, true},
		{" 1987-01-01 ", 1987, true},
		{"", 0, false},
		{"20", 0, false},
		{"abcd", 0, false},
		{"2019-13", 0, false},
		{"2019/05/31", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.date, func(t *testing.T) {
			got, ok := ReleaseYear(tc.date)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "80-100", Range{Min: 80, Max: 100}.String())
}

func TestFilterSpec_String(t *testing.T) {
	assert.Equal(t, "none", FilterSpec{}.String())
	assert.Equal(t, "popularity 80-100, year 2020-2024",
		FilterSpec{Popularity: &Range{Min: 80, Max: 100}, Year: &Range{Min: 2020, Max: 2024}}.String())
}
