package domain

// CandidatePool is an ordered, immutable set of tracks keyed by ID.
// Every operation returns a new pool; the receiver is never modified.
type CandidatePool struct {
	tracks []Track
}

// NewCandidatePool builds a pool from tracks in order. Tracks with an empty
// ID are skipped and the first occurrence of a duplicate ID wins.
func NewCandidatePool(tracks ...Track) CandidatePool {
	seen := make(map[string]struct{}, len(tracks))
	kept := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if t.ID == "" {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		kept = append(kept, cloneTrack(t))
	}
	return CandidatePool{tracks: kept}
}

// Len returns the number of tracks in the pool.
func (p CandidatePool) Len() int {
	return len(p.tracks)
}

// IsEmpty reports whether the pool has no tracks.
func (p CandidatePool) IsEmpty() bool {
	return len(p.tracks) == 0
}

// Tracks returns a copy of the pool's tracks in order.
func (p CandidatePool) Tracks() []Track {
	out := make([]Track, len(p.tracks))
	for i, t := range p.tracks {
		out[i] = cloneTrack(t)
	}
	return out
}

// IDs returns the track IDs in pool order.
func (p CandidatePool) IDs() []string {
	ids := make([]string, len(p.tracks))
	for i, t := range p.tracks {
		ids[i] = t.ID
	}
	return ids
}

// Contains reports whether a track with the given ID is in the pool.
func (p CandidatePool) Contains(id string) bool {
	for _, t := range p.tracks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Without returns a pool with the given track ID removed.
func (p CandidatePool) Without(id string) CandidatePool {
	return p.Where(func(t Track) bool { return t.ID != id })
}

// Where returns a pool holding only the tracks for which keep returns true.
func (p CandidatePool) Where(keep func(Track) bool) CandidatePool {
	kept := make([]Track, 0, len(p.tracks))
	for _, t := range p.tracks {
		if keep(t) {
			kept = append(kept, cloneTrack(t))
		}
	}
	return CandidatePool{tracks: kept}
}

// Limit returns the first n tracks of the pool. n <= 0 keeps everything.
func (p CandidatePool) Limit(n int) CandidatePool {
	if n <= 0 || n >= len(p.tracks) {
		return p.Where(func(Track) bool { return true })
	}
	return NewCandidatePool(p.tracks[:n]...)
}

// Merge concatenates pools in order and deduplicates by ID, first wins.
func Merge(pools ...CandidatePool) CandidatePool {
	var all []Track
	for _, p := range pools {
		all = append(all, p.tracks...)
	}
	return NewCandidatePool(all...)
}

func cloneTrack(t Track) Track {
	if t.ArtistIDs != nil {
		t.ArtistIDs = append([]string(nil), t.ArtistIDs...)
	}
	return t
}
