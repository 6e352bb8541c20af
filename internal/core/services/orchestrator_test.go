package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlhtlh2211/datavis-project2/internal/analytics/genre"
	"github.com/tlhtlh2211/datavis-project2/internal/analytics/personality"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

type mockStore map[string]domain.Snapshot

func (m mockStore) Lookup(_ context.Context, handle, step string) (json.RawMessage, error) {
	snap, ok := m[handle]
	if !ok {
		return nil, domain.ErrNotFound
	}
	raw, ok := snap.Lookup(step)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

type mockFeatures struct {
	mu      sync.Mutex
	calls   int
	failIf  func(ids []string) bool
	feature domain.AudioFeatures
}

func (m *mockFeatures) GetAudioFeatures(_ context.Context, ids []string) (map[string]domain.AudioFeatures, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if len(ids) > ports.MaxFeatureBatch {
		return nil, domain.ErrInvalidArgument
	}
	if m.failIf != nil && m.failIf(ids) {
		return nil, errors.New("upstream 503")
	}
	out := make(map[string]domain.AudioFeatures, len(ids))
	for _, id := range ids {
		f := m.feature
		f.ID = id
		out[id] = f
	}
	return out, nil
}

var chill = domain.AudioFeatures{Valence: 0.5, Energy: 0.3, Acousticness: 0.2, Danceability: 0.5, Tempo: 110, Mode: 1, Loudness: -10}

func entry(step string, data any) domain.SnapshotEntry {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return domain.SnapshotEntry{Step: step, Data: raw}
}

func recentPlays(n int) map[string]any {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"played_at": "2024-03-01T10:00:00Z",
			"track": map[string]any{
				"id":         fmt.Sprintf("t%d", i),
				"name":       fmt.Sprintf("Song %d", i),
				"popularity": 50,
				"artists":    []map[string]any{{"name": "Artist"}},
				"album":      map[string]any{"name": "Album", "images": []any{}},
			},
		}
	}
	return map[string]any{"items": items, "limit": 50}
}

func newTestOrchestrator(store ports.SnapshotStore, features ports.AudioFeatureProvider) *Orchestrator {
	engine := personality.New(genre.DefaultKnowledgeBase())
	if features == nil {
		return NewOrchestrator(store, nil, engine)
	}
	return NewOrchestrator(store, features, engine, WithWorkers(2))
}

func TestOrchestrator_MoodDistribution(t *testing.T) {
	plays := recentPlays(3)
	items := plays["items"].([]map[string]any)
	delete(items[1], "played_at")
	items[2]["track"].(map[string]any)["id"] = ""

	tests := []struct {
		name      string
		store     mockStore
		features  *mockFeatures
		wantTotal int
		wantCalls int
		wantErr   error
	}{
		{
			name:      "ignores plays without timestamp or id",
			store:     mockStore{"u.json": {entry(domain.StepRecentlyPlayed, plays)}},
			features:  &mockFeatures{feature: chill},
			wantTotal: 1,
			wantCalls: 1,
		},
		{
			name:      "skips failed batches",
			store:     mockStore{"u.json": {entry(domain.StepRecentlyPlayed, recentPlays(60))}},
			features:  &mockFeatures{feature: chill, failIf: func(ids []string) bool { return slices.Contains(ids, "t0") }},
			wantTotal: 10,
			wantCalls: 2,
		},
		{
			name:      "all batches failed",
			store:     mockStore{"u.json": {entry(domain.StepRecentlyPlayed, recentPlays(60))}},
			features:  &mockFeatures{feature: chill, failIf: func([]string) bool { return true }},
			wantCalls: 2,
			wantErr:   ports.ErrFeaturesUnavailable,
		},
		{
			name:      "no plays makes no calls",
			store:     mockStore{"u.json": {entry(domain.StepRecentlyPlayed, map[string]any{"items": []any{}})}},
			features:  &mockFeatures{feature: chill},
			wantTotal: 0,
		},
		{
			name:     "missing step",
			store:    mockStore{"u.json": {entry(domain.StepCurrentUser, map[string]any{"id": "u"})}},
			features: &mockFeatures{feature: chill},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "unknown handle",
			store:    mockStore{},
			features: &mockFeatures{feature: chill},
			wantErr:  domain.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := newTestOrchestrator(tc.store, tc.features)

			got, err := o.MoodDistribution(context.Background(), "u.json")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantTotal, got.TotalTracks)
				if tc.wantTotal > 0 {
					assert.Equal(t, []string{"Chill"}, got.Labels)
					assert.Equal(t, 100.0, got.Percentages["Chill"])
				}
			}
			assert.Equal(t, tc.wantCalls, tc.features.calls)
		})
	}
}

func TestOrchestrator_MoodDistributionWithoutProvider(t *testing.T) {
	store := mockStore{"u.json": {entry(domain.StepRecentlyPlayed, recentPlays(2))}}
	o := newTestOrchestrator(store, nil)

	_, err := o.MoodDistribution(context.Background(), "u.json")
	require.ErrorIs(t, err, ports.ErrProviderNotConfigured)
}

func TestOrchestrator_PopularityScore(t *testing.T) {
	tracks := map[string]any{"items": []map[string]any{
		{"id": "a", "popularity": 80},
		{"id": "b", "popularity": 60},
		{"id": "c", "popularity": 40},
		{"id": "d", "popularity": 20},
	}}
	store := mockStore{"u.json": {entry(domain.StepTopTracksMedium, tracks)}}
	o := newTestOrchestrator(store, nil)

	got, err := o.PopularityScore(context.Background(), "u.json", domain.MediumTerm)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.AveragePopularity)
	assert.Equal(t, 60.0, got.WeightedAverage)
	assert.Equal(t, 20, got.MinPopularity)
	assert.Equal(t, 80, got.MaxPopularity)
	assert.Equal(t, 4, got.TrackCount)

	_, err = o.PopularityScore(context.Background(), "u.json", domain.ShortTerm)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = o.PopularityScore(context.Background(), "u.json", domain.TimeRange("forever"))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestOrchestrator_GenreDistribution(t *testing.T) {
	artists := map[string]any{"items": []map[string]any{
		{"name": "A", "genres": []string{"pop"}},
		{"name": "B", "genres": []string{"pop", "rock"}},
	}}
	store := mockStore{"u.json": {entry(domain.StepTopArtistsLong, artists)}}
	o := newTestOrchestrator(store, nil)

	got, err := o.GenreDistribution(context.Background(), "u.json", domain.LongTerm, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"pop", "rock"}, got.Labels)
	assert.Equal(t, []int{7, 2}, got.Counts)
	assert.Equal(t, 9, got.TotalGenreMentions)
	assert.Equal(t, 2, got.UniqueGenreCount)
}

func TestOrchestrator_PersonalityPrediction(t *testing.T) {
	artists := map[string]any{"items": []map[string]any{
		{"name": "A", "genres": []string{"k-pop", "dance pop"}},
		{"name": "B", "genres": []string{"vietnamese hip hop"}},
	}}
	trackItems := make([]map[string]any, 25)
	for i := range trackItems {
		trackItems[i] = map[string]any{
			"id":          fmt.Sprintf("t%d", i),
			"popularity":  70,
			"duration_ms": 200000,
			"album":       map[string]any{"release_date": "2020-01-01"},
			"artists":     []map[string]any{{"name": "A", "followers": map[string]any{"total": 1000}}},
		}
	}
	trackItems[3]["id"] = nil

	t.Run("without top tracks", func(t *testing.T) {
		store := mockStore{"u.json": {entry(domain.StepTopArtistsShort, artists)}}
		features := &mockFeatures{feature: chill}
		o := newTestOrchestrator(store, features)

		got, err := o.PersonalityPrediction(context.Background(), "u.json", domain.ShortTerm)
		require.NoError(t, err)
		assert.Equal(t, []string{"k-pop", "dance pop", "vietnamese hip hop"}, got.TopGenres)
		assert.Zero(t, got.AudioFeaturesCount)
		assert.Zero(t, features.calls)
		assert.Equal(t, []string{"korean", "vietnamese"}, got.Personality.Metadata.CulturalRegions)
	})

	t.Run("with top tracks and features", func(t *testing.T) {
		store := mockStore{"u.json": {
			entry(domain.StepTopArtistsShort, artists),
			entry(domain.StepTopTracksShort, map[string]any{"items": trackItems}),
		}}
		features := &mockFeatures{feature: chill}
		o := newTestOrchestrator(store, features)

		got, err := o.PersonalityPrediction(context.Background(), "u.json", domain.ShortTerm)
		require.NoError(t, err)
		assert.Equal(t, 19, got.AudioFeaturesCount)
		assert.Equal(t, 1, features.calls)
		assert.Equal(t, 19, got.Personality.Metadata.AudioFeaturesAnalyzed)
	})

	t.Run("feature outage degrades to genres", func(t *testing.T) {
		store := mockStore{"u.json": {
			entry(domain.StepTopArtistsShort, artists),
			entry(domain.StepTopTracksShort, map[string]any{"items": trackItems}),
		}}
		features := &mockFeatures{feature: chill, failIf: func([]string) bool { return true }}
		o := newTestOrchestrator(store, features)

		got, err := o.PersonalityPrediction(context.Background(), "u.json", domain.ShortTerm)
		require.NoError(t, err)
		assert.Zero(t, got.AudioFeaturesCount)
		assert.Nil(t, got.Personality.Metadata.AudioFeaturesSummary)
	})

	t.Run("missing top artists", func(t *testing.T) {
		store := mockStore{"u.json": {entry(domain.StepTopTracksShort, map[string]any{"items": trackItems})}}
		o := newTestOrchestrator(store, nil)

		_, err := o.PersonalityPrediction(context.Background(), "u.json", domain.ShortTerm)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrchestrator_RecentlyPlayed(t *testing.T) {
	store := mockStore{"u.json": {entry(domain.StepRecentlyPlayed, recentPlays(5))}}
	o := newTestOrchestrator(store, nil)

	raw, err := o.RecentlyPlayed(context.Background(), "u.json", 2)
	require.NoError(t, err)

	var doc struct {
		Limit int `json:"limit"`
		Items []struct {
			Track map[string]json.RawMessage `json:"track"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 50, doc.Limit, "other top-level keys are kept")
	require.Len(t, doc.Items, 2)

	track := doc.Items[0].Track
	assert.NotContains(t, track, "id")
	assert.JSONEq(t, `"Song 0"`, string(track["name"]))
	assert.JSONEq(t, `["Artist"]`, string(track["artists"]))
	assert.JSONEq(t, `{"name":"Album","images":[]}`, string(track["album"]))
	assert.JSONEq(t, `"2024-03-01T10:00:00Z"`, string(track["played_at"]))
}

func TestOrchestrator_TopTracksAndSaved(t *testing.T) {
	track := map[string]any{"id": "x1", "name": "Song", "popularity": 42, "duration_ms": 1000,
		"artists": []map[string]any{{"name": "A"}, {"name": "B"}}, "album": map[string]any{"name": "Al"}}
	store := mockStore{"u.json": {
		entry(domain.StepTopTracksLong, map[string]any{"items": []any{track}}),
		entry(domain.StepSavedTracks, map[string]any{"items": []any{map[string]any{"added_at": "2024-01-01", "track": track}}}),
	}}
	o := newTestOrchestrator(store, nil)

	want := `{"items":[{"track":{"name":"Song","id":"x1","popularity":42,"artists":["A","B"],
		"album":{"name":"Al","images":[]},"duration_ms":1000,"played_at":null}}]}`

	top, err := o.TopTracks(context.Background(), "u.json", domain.LongTerm, 50)
	require.NoError(t, err)
	assert.JSONEq(t, want, string(top))

	saved, err := o.SavedTracks(context.Background(), "u.json", 50)
	require.NoError(t, err)
	assert.JSONEq(t, want, string(saved))
}

func TestOrchestrator_TopArtists(t *testing.T) {
	artists := map[string]any{"total": 2, "items": []map[string]any{
		{"name": "A", "popularity": 90, "genres": []string{"pop"}, "images": []any{}, "followers": map[string]any{"total": 12}, "uri": "spotify:artist:a"},
		{"name": "B", "popularity": 10, "genres": []string{}, "images": []any{}, "followers": map[string]any{"total": 1}},
	}}
	store := mockStore{"u.json": {entry(domain.StepTopArtistsMedium, artists)}}
	o := newTestOrchestrator(store, nil)

	raw, err := o.TopArtists(context.Background(), "u.json", domain.MediumTerm, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":2,"items":[{"name":"A","popularity":90,"images":[],"genres":["pop"],"total_followers":12}]}`, string(raw))

	_, err = o.TopArtists(context.Background(), "u.json", domain.TimeRange("medium"), 1)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestOrchestrator_Profile(t *testing.T) {
	store := mockStore{"u.json": {entry(domain.StepCurrentUser, map[string]any{"id": "u", "display_name": "U"})}}
	o := newTestOrchestrator(store, nil)

	raw, err := o.Profile(context.Background(), "u.json")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"display_name":"U"`))
}
