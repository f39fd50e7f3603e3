package rest

import (
	"net/http"
	"strings"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
)

// GetRecommendations handles GET /recommendations?q=...
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := strings.TrimSpace(values.Get("q"))
	if query == "" {
		writeErrorWithCode(w, http.StatusBadRequest, "q is required", domain.SeedNotFound.String())
		return
	}

	params, err := parseListQuery(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.Recommend(r.Context(), query, params.N, params.Filter())
	var body tracksResponse
	if rec.Seed.ID != "" {
		seed := toTrackResponse(rec.Seed)
		body.Seed = &seed
	}
	if err != nil {
		writeServiceError(w, r, body, err)
		return
	}

	body.Tracks = make([]trackResponse, len(rec.Tracks))
	for i, t := range rec.Tracks {
		body.Tracks[i] = toRankedResponse(t)
	}
	body.Stats = rec.Stats
	writeJSON(w, http.StatusOK, body)
}
