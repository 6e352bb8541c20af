package rest

import (
	"encoding/json"
	"net/http"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// Profile handles GET /user/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p := snapshotQuery(r.URL.Query())
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return
	}

	raw, err := h.svc.Profile(r.Context(), p.Filename)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeRaw(w, raw)
}

// RecentlyPlayed handles GET /user/recently_played
func (h *Handler) RecentlyPlayed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := limitQuery(q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p := listParams{snapshotParams: snapshotQuery(q), Limit: limit}
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return
	}

	raw, err := h.svc.RecentlyPlayed(r.Context(), p.Filename, p.Limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeRaw(w, raw)
}

// TopArtists handles GET /user/top_artists
func (h *Handler) TopArtists(w http.ResponseWriter, r *http.Request) {
	p, ok := h.rangeList(w, r)
	if !ok {
		return
	}

	raw, err := h.svc.TopArtists(r.Context(), p.Filename, domain.TimeRange(p.TimeRange), p.Limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeRaw(w, raw)
}

// TopTracks handles GET /user/top_tracks
func (h *Handler) TopTracks(w http.ResponseWriter, r *http.Request) {
	p, ok := h.rangeList(w, r)
	if !ok {
		return
	}

	raw, err := h.svc.TopTracks(r.Context(), p.Filename, domain.TimeRange(p.TimeRange), p.Limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeRaw(w, raw)
}

// SavedTracks handles GET /user/saved_tracks
func (h *Handler) SavedTracks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := limitQuery(q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p := listParams{snapshotParams: snapshotQuery(q), Limit: limit}
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return
	}

	raw, err := h.svc.SavedTracks(r.Context(), p.Filename, p.Limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeRaw(w, raw)
}

func (h *Handler) rangeList(w http.ResponseWriter, r *http.Request) (rangeListParams, bool) {
	q := r.URL.Query()
	limit, err := limitQuery(q)
	if err != nil {
		h.writeError(w, r, err)
		return rangeListParams{}, false
	}
	p := rangeListParams{rangeParams: rangeQuery(q, defaultUserRange), Limit: limit}
	if err := h.check(p); err != nil {
		h.writeError(w, r, err)
		return rangeListParams{}, false
	}
	return p, true
}
