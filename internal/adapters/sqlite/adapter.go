// Package sqlite provides an offline catalog backed by a SQLite snapshot of
// catalog data. It implements ports.Catalog so the recommender can run
// without network access.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/soundalike/internal/core/ports"
	"github.com/ewilliams-labs/soundalike/internal/logging"
	"github.com/ewilliams-labs/soundalike/internal/metrics"
)

// Adapter implements ports.Catalog for SQLite.
type Adapter struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ ports.Catalog = (*Adapter)(nil)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db, log: logging.Component("sqlite")}
	if err := adapter.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

const trackColumns = `t.id, t.name, t.album, t.release_date, t.image_url, t.preview_url,
	t.popularity, t.duration_ms, t.external_url`

// SearchTracks ranks tracks by how many query words appear in their name,
// artists or album, then by popularity.
func (a *Adapter) SearchTracks(ctx context.Context, query string, limit int) (tracks []ports.RawTrack, err error) {
	defer func() { metrics.RecordCatalogRequest("sqlite_search", err) }()

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}

	scores := make([]string, len(terms))
	args := make([]any, 0, len(terms)+1)
	for i, term := range terms {
		scores[i] = "(instr(t.search_text, ?) > 0)"
		args = append(args, term)
	}
	args = append(args, limit)

	q := `SELECT ` + strings.ReplaceAll(trackColumns, "t.", "") + ` FROM (
		SELECT ` + trackColumns + `, ` + strings.Join(scores, " + ") + ` AS score
		FROM tracks t
	) WHERE score > 0
	ORDER BY score DESC, popularity DESC, id ASC
	LIMIT ?`

	tracks, err = a.queryTracks(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite catalog: search: %w", err)
	}
	return tracks, nil
}

// GetArtistTopTracks returns the artist's most popular tracks. The snapshot
// has no market data, so market is ignored.
func (a *Adapter) GetArtistTopTracks(ctx context.Context, artistID, market string, limit int) (tracks []ports.RawTrack, err error) {
	defer func() { metrics.RecordCatalogRequest("sqlite_top_tracks", err) }()

	if limit <= 0 {
		return nil, nil
	}
	tracks, err = a.queryTracks(ctx, `
		SELECT `+trackColumns+`
		FROM tracks t
		JOIN track_artists ta ON ta.track_id = t.id
		WHERE ta.artist_id = ?
		ORDER BY t.popularity DESC, t.id ASC
		LIMIT ?
	`, artistID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite catalog: top tracks for %s: %w", artistID, err)
	}
	return tracks, nil
}

// GetRelatedArtists returns related artists in stored order.
func (a *Adapter) GetRelatedArtists(ctx context.Context, artistID string) (artists []ports.RawArtist, err error) {
	defer func() { metrics.RecordCatalogRequest("sqlite_related_artists", err) }()

	rows, err := a.db.QueryContext(ctx, `
		SELECT r.related_id, IFNULL(ar.name, ''), IFNULL(ar.genres, ''), IFNULL(ar.popularity, 0)
		FROM related_artists r
		LEFT JOIN artists ar ON ar.id = r.related_id
		WHERE r.artist_id = ?
		ORDER BY r.position ASC
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("sqlite catalog: related artists for %s: %w", artistID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var artist ports.RawArtist
		var genres string
		if err := rows.Scan(&artist.ID, &artist.Name, &genres, &artist.Popularity); err != nil {
			return nil, fmt.Errorf("sqlite catalog: scan related artist: %w", err)
		}
		artist.Genres = splitGenres(genres)
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite catalog: iterate related artists: %w", err)
	}
	return artists, nil
}

// GetAudioFeatures returns nil, nil when the snapshot has no analysis for the track.
func (a *Adapter) GetAudioFeatures(ctx context.Context, trackID string) (features *ports.RawFeatures, err error) {
	defer func() { metrics.RecordCatalogRequest("sqlite_audio_features", err) }()

	var (
		dance, energy, valence, tempo, acoustic, live, instrumental, loud, speech sql.NullFloat64
		key, mode                                                                sql.NullInt64
	)
	err = a.db.QueryRowContext(ctx, `
		SELECT danceability, energy, valence, tempo, acousticness, liveness,
			instrumentalness, loudness, speechiness, key, mode
		FROM audio_features WHERE track_id = ?
	`, trackID).Scan(&dance, &energy, &valence, &tempo, &acoustic, &live, &instrumental, &loud, &speech, &key, &mode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite catalog: audio features for %s: %w", trackID, err)
	}

	return &ports.RawFeatures{
		Danceability:     nullFloat(dance),
		Energy:           nullFloat(energy),
		Valence:          nullFloat(valence),
		Tempo:            nullFloat(tempo),
		Acousticness:     nullFloat(acoustic),
		Liveness:         nullFloat(live),
		Instrumentalness: nullFloat(instrumental),
		Loudness:         nullFloat(loud),
		Speechiness:      nullFloat(speech),
		Key:              nullInt(key),
		Mode:             nullInt(mode),
	}, nil
}

// queryTracks runs a query selecting trackColumns and attaches each track's artists.
func (a *Adapter) queryTracks(ctx context.Context, query string, args ...any) ([]ports.RawTrack, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []ports.RawTrack
	for rows.Next() {
		var (
			t                                         ports.RawTrack
			album, release, image, preview, external sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &album, &release, &image, &preview, &t.Popularity, &t.DurationMs, &external); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		t.Album = ports.RawAlbum{Name: album.String, ReleaseDate: release.String}
		if image.Valid && image.String != "" {
			t.Album.Images = []ports.RawImage{{URL: image.String}}
		}
		t.PreviewURL = preview.String
		if external.Valid && external.String != "" {
			t.ExternalURLs = map[string]string{"spotify": external.String}
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	_ = rows.Close()
	if len(tracks) == 0 {
		return tracks, nil
	}
	if err := a.attachArtists(ctx, tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (a *Adapter) attachArtists(ctx context.Context, tracks []ports.RawTrack) error {
	index := make(map[string][]int, len(tracks))
	args := make([]any, 0, len(tracks))
	for i, t := range tracks {
		if _, seen := index[t.ID]; !seen {
			args = append(args, t.ID)
		}
		index[t.ID] = append(index[t.ID], i)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	rows, err := a.db.QueryContext(ctx, `
		SELECT track_id, artist_id, artist_name
		FROM track_artists
		WHERE track_id IN (`+placeholders+`)
		ORDER BY track_id, position
	`, args...)
	if err != nil {
		return fmt.Errorf("load track artists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var trackID string
		var artist ports.RawArtistRef
		if err := rows.Scan(&trackID, &artist.ID, &artist.Name); err != nil {
			return fmt.Errorf("scan track artist: %w", err)
		}
		for _, i := range index[trackID] {
			tracks[i].Artists = append(tracks[i].Artists, artist)
		}
	}
	return rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func splitGenres(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS tracks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		album TEXT,
		release_date TEXT,
		image_url TEXT,
		preview_url TEXT,
		popularity INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		external_url TEXT,
		search_text TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS track_artists (
		track_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		artist_id TEXT NOT NULL,
		artist_name TEXT NOT NULL,
		PRIMARY KEY (track_id, position),
		FOREIGN KEY(track_id) REFERENCES tracks(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_track_artists_artist ON track_artists(artist_id);

	CREATE TABLE IF NOT EXISTS artists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		genres TEXT,
		popularity INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS related_artists (
		artist_id TEXT NOT NULL,
		related_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (artist_id, related_id)
	);

	CREATE TABLE IF NOT EXISTS audio_features (
		track_id TEXT PRIMARY KEY,
		danceability REAL,
		energy REAL,
		valence REAL,
		tempo REAL,
		acousticness REAL,
		liveness REAL,
		instrumentalness REAL,
		loudness REAL,
		speechiness REAL,
		key INTEGER,
		mode INTEGER,
		FOREIGN KEY(track_id) REFERENCES tracks(id) ON DELETE CASCADE
	);
	`
	_, err := a.db.Exec(query)
	return err
}
