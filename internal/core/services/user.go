package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// Item limits accepted by the user endpoints.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 50
)

type albumView struct {
	Name   *string           `json:"name"`
	Images []json.RawMessage `json:"images"`
}

type trackView struct {
	Name       *string   `json:"name"`
	ID         *string   `json:"id,omitempty"`
	Popularity *int      `json:"popularity"`
	Artists    []string  `json:"artists"`
	Album      albumView `json:"album"`
	DurationMs *int      `json:"duration_ms"`
	PlayedAt   *string   `json:"played_at"`
}

type trackItemView struct {
	Track trackView `json:"track"`
}

type artistView struct {
	Name           *string         `json:"name"`
	Popularity     *int            `json:"popularity"`
	Images         json.RawMessage `json:"images"`
	Genres         []string        `json:"genres"`
	TotalFollowers *int            `json:"total_followers"`
}

func newTrackView(t trackObject, playedAt *string, withID bool) trackItemView {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	images := t.Album.Images
	if images == nil {
		images = []json.RawMessage{}
	}
	v := trackView{
		Name:       t.Name,
		Popularity: t.Popularity,
		Artists:    artists,
		Album:      albumView{Name: t.Album.Name, Images: images},
		DurationMs: t.DurationMs,
		PlayedAt:   playedAt,
	}
	if withID {
		id := t.id()
		v.ID = &id
	}
	return trackItemView{Track: v}
}

func newArtistView(a artistObject) artistView {
	v := artistView{Name: a.Name, Popularity: a.Popularity, Images: a.Images, Genres: a.Genres}
	if len(v.Images) == 0 {
		v.Images = json.RawMessage("null")
	}
	if a.Followers != nil {
		total := a.Followers.Total
		v.TotalFollowers = &total
	}
	return v
}

func (o *Orchestrator) lookup(ctx context.Context, handle, step string) (json.RawMessage, error) {
	raw, err := o.store.Lookup(ctx, handle, step)
	if err != nil {
		return nil, fmt.Errorf("service: lookup %s: %w", step, err)
	}
	return raw, nil
}

// Profile returns the stored current-user payload unchanged.
func (o *Orchestrator) Profile(ctx context.Context, handle string) (json.RawMessage, error) {
	return o.lookup(ctx, handle, domain.StepCurrentUser)
}

// RecentlyPlayed returns the recently played tracks reshaped to the track view.
func (o *Orchestrator) RecentlyPlayed(ctx context.Context, handle string, limit int) (json.RawMessage, error) {
	raw, err := o.lookup(ctx, handle, domain.StepRecentlyPlayed)
	if err != nil {
		return nil, err
	}
	return reshapeItems(raw, limit, func(it playHistoryItem) trackItemView {
		return newTrackView(it.Track, it.PlayedAt, false)
	})
}

// TopArtists returns the top artists of a window reshaped to the artist view.
func (o *Orchestrator) TopArtists(ctx context.Context, handle string, tr domain.TimeRange, limit int) (json.RawMessage, error) {
	if !tr.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	raw, err := o.lookup(ctx, handle, tr.ArtistsStep())
	if err != nil {
		return nil, err
	}
	return reshapeItems(raw, limit, newArtistView)
}

// TopTracks returns the top tracks of a window reshaped to the track view.
func (o *Orchestrator) TopTracks(ctx context.Context, handle string, tr domain.TimeRange, limit int) (json.RawMessage, error) {
	if !tr.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	raw, err := o.lookup(ctx, handle, tr.TracksStep())
	if err != nil {
		return nil, err
	}
	return reshapeItems(raw, limit, func(t trackObject) trackItemView {
		return newTrackView(t, t.PlayedAt, true)
	})
}

// SavedTracks returns the saved tracks reshaped to the track view.
func (o *Orchestrator) SavedTracks(ctx context.Context, handle string, limit int) (json.RawMessage, error) {
	raw, err := o.lookup(ctx, handle, domain.StepSavedTracks)
	if err != nil {
		return nil, err
	}
	return reshapeItems(raw, limit, func(it savedTrackItem) trackItemView {
		return newTrackView(it.Track, it.PlayedAt, true)
	})
}
