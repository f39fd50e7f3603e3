package rest

import (
	"net/http"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
)

// ListMoods handles GET /moods
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	moods := domain.Moods()
	profiles := make([]domain.MoodProfile, 0, len(moods))
	for _, m := range moods {
		if p, ok := m.Profile(); ok {
			profiles = append(profiles, p)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"moods": profiles})
}

// GetMoodTracks handles GET /moods/{mood}
func (h *Handler) GetMoodTracks(w http.ResponseWriter, r *http.Request) {
	mood := r.PathValue("mood")

	params, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tracks, err := h.svc.RecommendByMood(r.Context(), mood, params.N, params.Filter())
	body := tracksResponse{Mood: mood}
	if err != nil {
		writeServiceError(w, r, body, err)
		return
	}

	body.Tracks = make([]trackResponse, len(tracks))
	for i, t := range tracks {
		body.Tracks[i] = toTrackResponse(t)
	}
	writeJSON(w, http.StatusOK, body)
}
