package rest

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/core/services"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc      *services.Orchestrator // Dependency on the Core Service
	router   *http.ServeMux         // Standard library router
	validate *validator.Validate
	log      *zap.Logger
	chain    http.Handler
}

// NewHandler initializes the HTTP adapter and sets up routes. A nil logger
// disables request logging.
func NewHandler(svc *services.Orchestrator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{
		svc:      svc,
		router:   http.NewServeMux(),
		validate: newValidator(),
		log:      log.Named("http"),
	}

	// Register Routes
	h.routes()
	h.chain = requestID(h.logRequests(h.router))

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It passes the request through the middleware chain to the internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// Stored listening data
	h.router.HandleFunc("GET /user/profile", h.Profile)
	h.router.HandleFunc("GET /user/recently_played", h.RecentlyPlayed)
	h.router.HandleFunc("GET /user/top_artists", h.TopArtists)
	h.router.HandleFunc("GET /user/top_tracks", h.TopTracks)
	h.router.HandleFunc("GET /user/saved_tracks", h.SavedTracks)

	// Analytics
	h.router.HandleFunc("GET /analysis/mood_distribution", h.MoodDistribution)
	h.router.HandleFunc("GET /analysis/popularity_score", h.PopularityScore)
	h.router.HandleFunc("GET /analysis/genre_distribution", h.GenreDistribution)
	h.router.HandleFunc("GET /analysis/personality_prediction", h.PersonalityPrediction)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
