package sqlite

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

// Snapshot is an exported slice of the catalog. Features and Related are
// keyed by track ID and artist ID respectively.
type Snapshot struct {
	Tracks   []ports.RawTrack             `json:"tracks"`
	Features map[string]ports.RawFeatures `json:"features,omitempty"`
	Artists  []ports.RawArtist            `json:"artists,omitempty"`
	Related  map[string][]string          `json:"related,omitempty"`
}

// ImportStats counts what an import wrote.
type ImportStats struct {
	Tracks   int `json:"tracks"`
	Features int `json:"features"`
	Artists  int `json:"artists"`
	Related  int `json:"related"`
	Skipped  int `json:"skipped"`
}

// DecodeSnapshot reads a JSON snapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// ImportFile decodes the snapshot at path and imports it.
func (a *Adapter) ImportFile(ctx context.Context, path string) (ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := DecodeSnapshot(f)
	if err != nil {
		return ImportStats{}, err
	}
	return a.Import(ctx, snap)
}

// Import upserts the snapshot in a single transaction. Tracks without an ID
// are skipped. Re-importing a track replaces its artists and features.
func (a *Adapter) Import(ctx context.Context, snap Snapshot) (ImportStats, error) {
	var stats ImportStats

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	trackStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (id, name, album, release_date, image_url, preview_url, popularity, duration_ms, external_url, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			album = excluded.album,
			release_date = excluded.release_date,
			image_url = excluded.image_url,
			preview_url = excluded.preview_url,
			popularity = excluded.popularity,
			duration_ms = excluded.duration_ms,
			external_url = excluded.external_url,
			search_text = excluded.search_text
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare track upsert: %w", err)
	}
	defer trackStmt.Close()

	clearArtistsStmt, err := tx.PrepareContext(ctx, `DELETE FROM track_artists WHERE track_id = ?`)
	if err != nil {
		return stats, fmt.Errorf("prepare track artists delete: %w", err)
	}
	defer clearArtistsStmt.Close()

	artistRefStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO track_artists (track_id, position, artist_id, artist_name) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare track artist insert: %w", err)
	}
	defer artistRefStmt.Close()

	for _, t := range snap.Tracks {
		if strings.TrimSpace(t.ID) == "" {
			stats.Skipped++
			a.log.Warn().Str("name", t.Name).Msg("skipping snapshot track without id")
			continue
		}
		if _, err := trackStmt.ExecContext(ctx,
			t.ID,
			t.Name,
			t.Album.Name,
			t.Album.ReleaseDate,
			firstImage(t.Album.Images),
			t.PreviewURL,
			t.Popularity,
			t.DurationMs,
			t.ExternalURLs["spotify"],
			searchText(t),
		); err != nil {
			return stats, fmt.Errorf("upsert track %s: %w", t.ID, err)
		}
		if _, err := clearArtistsStmt.ExecContext(ctx, t.ID); err != nil {
			return stats, fmt.Errorf("clear artists for %s: %w", t.ID, err)
		}
		for i, artist := range t.Artists {
			if _, err := artistRefStmt.ExecContext(ctx, t.ID, i, artist.ID, artist.Name); err != nil {
				return stats, fmt.Errorf("insert artist for %s: %w", t.ID, err)
			}
		}
		stats.Tracks++
	}

	featureStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO audio_features (track_id, danceability, energy, valence, tempo, acousticness,
			liveness, instrumentalness, loudness, speechiness, key, mode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare features upsert: %w", err)
	}
	defer featureStmt.Close()

	for trackID, f := range snap.Features {
		if _, err := featureStmt.ExecContext(ctx, trackID,
			f.Danceability, f.Energy, f.Valence, f.Tempo, f.Acousticness,
			f.Liveness, f.Instrumentalness, f.Loudness, f.Speechiness, f.Key, f.Mode,
		); err != nil {
			return stats, fmt.Errorf("upsert features for %s: %w", trackID, err)
		}
		stats.Features++
	}

	artistStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO artists (id, name, genres, popularity) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare artist upsert: %w", err)
	}
	defer artistStmt.Close()

	for _, artist := range snap.Artists {
		if artist.ID == "" {
			stats.Skipped++
			continue
		}
		if _, err := artistStmt.ExecContext(ctx, artist.ID, artist.Name, strings.Join(artist.Genres, ","), artist.Popularity); err != nil {
			return stats, fmt.Errorf("upsert artist %s: %w", artist.ID, err)
		}
		stats.Artists++
	}

	clearRelatedStmt, err := tx.PrepareContext(ctx, `DELETE FROM related_artists WHERE artist_id = ?`)
	if err != nil {
		return stats, fmt.Errorf("prepare related delete: %w", err)
	}
	defer clearRelatedStmt.Close()

	relatedStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO related_artists (artist_id, related_id, position) VALUES (?, ?, ?)
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare related insert: %w", err)
	}
	defer relatedStmt.Close()

	for artistID, related := range snap.Related {
		if _, err := clearRelatedStmt.ExecContext(ctx, artistID); err != nil {
			return stats, fmt.Errorf("clear related for %s: %w", artistID, err)
		}
		for i, relatedID := range related {
			if _, err := relatedStmt.ExecContext(ctx, artistID, relatedID, i); err != nil {
				return stats, fmt.Errorf("insert related for %s: %w", artistID, err)
			}
			stats.Related++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}

	a.log.Info().
		Int("tracks", stats.Tracks).
		Int("features", stats.Features).
		Int("artists", stats.Artists).
		Int("related", stats.Related).
		Int("skipped", stats.Skipped).
		Msg("snapshot imported")
	return stats, nil
}

func firstImage(images []ports.RawImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func searchText(t ports.RawTrack) string {
	parts := []string{t.Name, t.Album.Name}
	for _, artist := range t.Artists {
		parts = append(parts, artist.Name)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
