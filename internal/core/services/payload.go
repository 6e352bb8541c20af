package services

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Catalogue objects as stored in snapshot payloads. Only the fields the
// service reads are declared; pointers distinguish absent values from zero.

type followersObject struct {
	Total int `json:"total"`
}

type artistRef struct {
	Name      string           `json:"name"`
	Followers *followersObject `json:"followers"`
}

type albumObject struct {
	Name        *string           `json:"name"`
	Images      []json.RawMessage `json:"images"`
	ReleaseDate string            `json:"release_date"`
}

type trackObject struct {
	ID         *string     `json:"id"`
	Name       *string     `json:"name"`
	Popularity *int        `json:"popularity"`
	Artists    []artistRef `json:"artists"`
	Album      albumObject `json:"album"`
	DurationMs *int        `json:"duration_ms"`
	Explicit   bool        `json:"explicit"`
	PlayedAt   *string     `json:"played_at"`
}

type artistObject struct {
	Name       *string          `json:"name"`
	Popularity *int             `json:"popularity"`
	Images     json.RawMessage  `json:"images"`
	Genres     []string         `json:"genres"`
	Followers  *followersObject `json:"followers"`
}

// playHistoryItem is an entry of recently_played.
type playHistoryItem struct {
	Track    trackObject `json:"track"`
	PlayedAt *string     `json:"played_at"`
}

// savedTrackItem is an entry of saved_tracks.
type savedTrackItem struct {
	Track    trackObject `json:"track"`
	PlayedAt *string     `json:"played_at"`
}

type page[T any] struct {
	Items []T `json:"items"`
}

func (t trackObject) id() string {
	if t.ID == nil {
		return ""
	}
	return *t.ID
}

func (t trackObject) popularity() int {
	if t.Popularity == nil {
		return 0
	}
	return *t.Popularity
}

func decodePage[T any](raw json.RawMessage) ([]T, error) {
	var p page[T]
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("service: decode payload: %w", err)
	}
	return p.Items, nil
}

// reshapeItems replaces the items of a paging payload with their views,
// truncated to limit. Every other top-level key is kept.
func reshapeItems[T, V any](raw json.RawMessage, limit int, view func(T) V) (json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("service: decode payload: %w", err)
	}

	var items []T
	if rawItems, ok := doc["items"]; ok && !bytes.Equal(bytes.TrimSpace(rawItems), []byte("null")) {
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return nil, fmt.Errorf("service: decode items: %w", err)
		}
	}

	views := make([]V, 0, min(len(items), limit))
	for _, it := range items {
		if len(views) == limit {
			break
		}
		views = append(views, view(it))
	}

	encoded, err := json.Marshal(views)
	if err != nil {
		return nil, fmt.Errorf("service: encode items: %w", err)
	}
	doc["items"] = encoded

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("service: encode payload: %w", err)
	}
	return out, nil
}
