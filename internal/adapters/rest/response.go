package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/logging"
)

type featuresResponse struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Acousticness     float64 `json:"acousticness"`
	Liveness         float64 `json:"liveness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
}

type trackResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Artist      string           `json:"artist"`
	Album       string           `json:"album"`
	ImageURL    string           `json:"image_url,omitempty"`
	PreviewURL  string           `json:"preview_url,omitempty"`
	ExternalURL string           `json:"external_url,omitempty"`
	ReleaseDate string           `json:"release_date"`
	Popularity  int              `json:"popularity"`
	DurationMs  int              `json:"duration_ms"`
	Duration    string           `json:"duration"`
	Similarity  *float64         `json:"similarity,omitempty"`
	Percent     *float64         `json:"percent,omitempty"`
	Features    featuresResponse `json:"features"`
}

type tracksResponse struct {
	Seed    *trackResponse                   `json:"seed,omitempty"`
	Mood    string                           `json:"mood,omitempty"`
	Tracks  []trackResponse                  `json:"tracks"`
	Stats   map[string]domain.FeatureSummary `json:"stats,omitempty"`
	Reason  string                           `json:"reason,omitempty"`
	Message string                           `json:"message,omitempty"`
}

func toTrackResponse(t domain.Track) trackResponse {
	f := t.Features
	return trackResponse{
		ID:          t.ID,
		Name:        t.Name,
		Artist:      t.Artist,
		Album:       t.Album,
		ImageURL:    t.ImageURL,
		PreviewURL:  t.PreviewURL,
		ExternalURL: t.ExternalURL,
		ReleaseDate: t.ReleaseDate,
		Popularity:  t.Popularity,
		DurationMs:  t.DurationMs,
		Duration:    domain.FormatDuration(t.DurationMs),
		Features: featuresResponse{
			Danceability:     f.Danceability,
			Energy:           f.Energy,
			Valence:          f.Valence,
			Tempo:            f.Tempo,
			Acousticness:     f.Acousticness,
			Liveness:         f.Liveness,
			Instrumentalness: f.Instrumentalness,
			Loudness:         f.Loudness,
			Speechiness:      f.Speechiness,
			Key:              f.Key,
			Mode:             f.Mode,
		},
	}
}

func toRankedResponse(r domain.RankedTrack) trackResponse {
	resp := toTrackResponse(r.Track)
	similarity, percent := r.Similarity, r.Percent()
	resp.Similarity = &similarity
	resp.Percent = &percent
	return resp
}

// writeServiceError maps a recommendation failure to a response. Outcomes
// where the request was fine but nothing came back are a 200 with an empty
// list and a reason code.
func writeServiceError(w http.ResponseWriter, r *http.Request, body tracksResponse, err error) {
	kind := domain.KindOf(err)
	switch kind {
	case domain.NoCandidatesFound, domain.EmptyAfterFilter, domain.EmptyPool:
		body.Tracks = []trackResponse{}
		body.Reason = kind.String()
		body.Message = err.Error()
		writeJSON(w, http.StatusOK, body)
	case domain.InvalidMood:
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), kind.String())
	case domain.SeedNotFound:
		writeErrorWithCode(w, http.StatusNotFound, err.Error(), kind.String())
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, "recommendation timed out")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
