package rest

import (
	"net/http"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/services"
)

type popularityResponse struct {
	Username  string `json:"username"`
	TimeRange string `json:"time_range"`
	domain.PopularityStats
}

type genreResponse struct {
	domain.GenreDistribution
	TimeRange string `json:"time_range"`
}

type personalityResponse struct {
	Username  string `json:"username"`
	TimeRange string `json:"time_range"`
	services.PersonalityReport
}

// MoodDistribution handles GET /analysis/mood_distribution
func (h *Handler) MoodDistribution(w http.ResponseWriter, r *http.Request) {
	p := snapshotQuery(r.URL.Query())
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return
	}

	dist, err := h.svc.MoodDistribution(r.Context(), p.Filename)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

// PopularityScore handles GET /analysis/popularity_score
func (h *Handler) PopularityScore(w http.ResponseWriter, r *http.Request) {
	p := rangeQuery(r.URL.Query(), defaultAnalysisRange)
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return
	}

	stats, err := h.svc.PopularityScore(r.Context(), p.Filename, domain.TimeRange(p.TimeRange))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, popularityResponse{Username: p.Username, TimeRange: p.TimeRange, PopularityStats: stats})
}

// GenreDistribution handles GET /analysis/genre_distribution
func (h *Handler) GenreDistribution(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topN, err := intQuery(q, "top_n", defaultTopN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p := genreParams{rangeParams: rangeQuery(q, defaultAnalysisRange), TopN: topN}
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return
	}

	dist, err := h.svc.GenreDistribution(r.Context(), p.Filename, domain.TimeRange(p.TimeRange), p.TopN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, genreResponse{GenreDistribution: dist, TimeRange: p.TimeRange})
}

// PersonalityPrediction handles GET /analysis/personality_prediction
func (h *Handler) PersonalityPrediction(w http.ResponseWriter, r *http.Request) {
	p := rangeQuery(r.URL.Query(), defaultAnalysisRange)
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return
	}

	report, err := h.svc.PersonalityPrediction(r.Context(), p.Filename, domain.TimeRange(p.TimeRange))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, personalityResponse{Username: p.Username, TimeRange: p.TimeRange, PersonalityReport: report})
}
