package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot step names written by the fetch phase.
const (
	StepCurrentUser      = "current_user"
	StepRecentlyPlayed   = "recently_played"
	StepTopArtistsShort  = "top_artists_short"
	StepTopArtistsMedium = "top_artists_medium"
	StepTopArtistsLong   = "top_artists_long"
	StepTopTracksShort   = "top_tracks_short"
	StepTopTracksMedium  = "top_tracks_medium"
	StepTopTracksLong    = "top_tracks_long"
	StepSavedTracks      = "saved_tracks"
)

// TimeRange is a top-items window.
type TimeRange string

const (
	ShortTerm  TimeRange = "short_term"
	MediumTerm TimeRange = "medium_term"
	LongTerm   TimeRange = "long_term"
)

var timeRangeSteps = map[TimeRange]struct{ artists, tracks string }{
	ShortTerm:  {StepTopArtistsShort, StepTopTracksShort},
	MediumTerm: {StepTopArtistsMedium, StepTopTracksMedium},
	LongTerm:   {StepTopArtistsLong, StepTopTracksLong},
}

// Valid reports whether r is one of the three supported windows.
func (r TimeRange) Valid() bool {
	_, ok := timeRangeSteps[r]
	return ok
}

// ArtistsStep returns the top-artists step for the window, or "" if invalid.
func (r TimeRange) ArtistsStep() string { return timeRangeSteps[r].artists }

// TracksStep returns the top-tracks step for the window, or "" if invalid.
func (r TimeRange) TracksStep() string { return timeRangeSteps[r].tracks }

// SnapshotEntry is one persisted capture.
type SnapshotEntry struct {
	Step string          `json:"step"`
	Data json.RawMessage `json:"data"`
}

// Snapshot is the ordered capture log of one user.
type Snapshot []SnapshotEntry

// Lookup returns the data of the first entry with the given step. Entries whose
// data is missing or JSON null are reported as absent.
func (s Snapshot) Lookup(step string) (json.RawMessage, bool) {
	for _, e := range s {
		if e.Step != step {
			continue
		}
		if isNull(e.Data) {
			return nil, false
		}
		return e.Data, true
	}
	return nil, false
}

// DecodeSnapshot parses a persisted snapshot file: a JSON array of
// {"step", "data"} objects. An empty document is an empty snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, nil
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("domain: decode snapshot: %w", err)
	}
	if s == nil {
		s = Snapshot{}
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
