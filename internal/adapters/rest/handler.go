package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ewilliams-labs/soundalike/internal/core/domain"
	"github.com/ewilliams-labs/soundalike/internal/core/services"
	"github.com/ewilliams-labs/soundalike/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Recommender is the part of the core service the HTTP adapter depends on.
type Recommender interface {
	Recommend(ctx context.Context, query string, n int, filter domain.FilterSpec) (services.Recommendation, error)
	RecommendByMood(ctx context.Context, mood string, n int, filter domain.FilterSpec) ([]domain.Track, error)
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    Recommender
	router *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc Recommender) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface. Every request gets a
// request ID and a completion log line before reaching the router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = logging.NewRequestID()
	}
	w.Header().Set(RequestIDHeader, id)
	r = r.WithContext(logging.WithRequestID(r.Context(), id))

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.router.ServeHTTP(rec, r)

	logging.Ctx(r.Context()).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rec.status).
		Dur("duration", time.Since(start)).
		Msg("request completed")
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("GET /recommendations", h.GetRecommendations)
	h.router.HandleFunc("GET /moods", h.ListMoods)
	h.router.HandleFunc("GET /moods/{mood}", h.GetMoodTracks)
	h.router.Handle("GET /metrics", promhttp.Handler())
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
