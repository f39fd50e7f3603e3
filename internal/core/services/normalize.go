package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
	"github.com/ewilliams-labs/soundalike/internal/logging"
	"github.com/ewilliams-labs/soundalike/internal/metrics"
)

// Normalize turns a raw catalog track and its optional analysis into a
// domain track. Every missing feature takes its default, so a nil features
// never fails. Only a missing id or name is an error (MalformedRecord).
func Normalize(raw ports.RawTrack, features *ports.RawFeatures) (domain.Track, error) {
	id := strings.TrimSpace(raw.ID)
	name := strings.TrimSpace(raw.Name)
	switch {
	case id == "":
		return domain.Track{}, domain.NewError(domain.MalformedRecord, "normalize", "missing id", nil)
	case name == "":
		return domain.Track{}, domain.NewError(domain.MalformedRecord, "normalize", "missing name for "+id, nil)
	}

	names := make([]string, 0, len(raw.Artists))
	ids := make([]string, 0, len(raw.Artists))
	for _, a := range raw.Artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
		if a.ID != "" {
			ids = append(ids, a.ID)
		}
	}

	t := domain.Track{
		ID:          id,
		Name:        name,
		Artist:      strings.Join(names, ", "),
		Album:       raw.Album.Name,
		PreviewURL:  raw.PreviewURL,
		Popularity:  min(max(raw.Popularity, 0), 100),
		ReleaseDate: raw.Album.ReleaseDate,
		DurationMs:  max(raw.DurationMs, 0),
		ExternalURL: raw.ExternalURLs["spotify"],
		ArtistIDs:   ids,
		Features:    normalizeFeatures(features),
	}
	if len(raw.Album.Images) > 0 {
		t.ImageURL = raw.Album.Images[0].URL
	}
	return t, nil
}

func normalizeFeatures(f *ports.RawFeatures) domain.AudioFeatures {
	out := domain.DefaultFeatures()
	if f == nil {
		return out
	}
	setFloat(&out.Danceability, f.Danceability)
	setFloat(&out.Energy, f.Energy)
	setFloat(&out.Valence, f.Valence)
	setFloat(&out.Tempo, f.Tempo)
	setFloat(&out.Acousticness, f.Acousticness)
	setFloat(&out.Liveness, f.Liveness)
	setFloat(&out.Instrumentalness, f.Instrumentalness)
	setFloat(&out.Loudness, f.Loudness)
	setFloat(&out.Speechiness, f.Speechiness)
	// the catalog reports an unknown key as -1
	if f.Key != nil && *f.Key >= 0 && *f.Key <= 11 {
		out.Key = *f.Key
	}
	if f.Mode != nil && (*f.Mode == 0 || *f.Mode == 1) {
		out.Mode = *f.Mode
	}
	return out
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// enrich fetches the analysis for each raw track and normalizes it, keeping
// input order and stopping once limit tracks are collected (limit <= 0 means
// all). Feature lookup failures fall back to defaults and malformed records
// are dropped, but a cancelled or expired ctx aborts with its error so no
// track is built from defaults it never had a chance to replace. source
// labels the log lines.
func enrich(ctx context.Context, catalog ports.Catalog, source string, raws []ports.RawTrack, limit int) ([]domain.Track, error) {
	log := logging.Ctx(ctx)
	tracks := make([]domain.Track, 0, len(raws))
	for _, raw := range raws {
		if limit > 0 && len(tracks) == limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var features *ports.RawFeatures
		if id := strings.TrimSpace(raw.ID); id != "" {
			f, err := catalog.GetAudioFeatures(ctx, id)
			if err != nil {
				if isContextErr(ctx, err) {
					return nil, err
				}
				log.Debug().Err(err).Str("source", source).Str("track_id", id).Msg("audio features lookup failed, using defaults")
			}
			features = f
		}

		t, err := Normalize(raw, features)
		if err != nil {
			log.Warn().Err(err).Str("source", source).Str("track_id", raw.ID).Msg("dropping malformed record")
			metrics.RecordDropped("malformed")
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func isContextErr(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
