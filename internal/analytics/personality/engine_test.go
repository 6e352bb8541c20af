package personality

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlhtlh2211/datavis-project2/internal/analytics/genre"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

func fixedClock(year int) Option {
	return WithClock(func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) })
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(genre.DefaultKnowledgeBase(), append([]Option{fixedClock(2026)}, opts...)...)
}

func TestInfer_EmptyInput(t *testing.T) {
	e := newEngine(t)

	got := e.Infer(nil, nil, nil)

	assert.Equal(t, domain.NewTraits(50, 50, 50, 50, 50), got.Scores)
	assert.Equal(t, 27.5, got.Confidence)
	assert.Equal(t, "Gently Creative Focused", got.PersonalityType)
	assert.Equal(t,
		"You are balanced between traditional and innovative approaches, with focused and consistent preferences.",
		got.Descriptions["openness"])
	assert.Len(t, got.Descriptions, 5)
	assert.Equal(t, 0.5, got.Metadata.ComplexityScore)
	assert.NotNil(t, got.Metadata.MatchedGenres)
	assert.NotNil(t, got.Metadata.CulturalRegions)
	assert.Nil(t, got.Metadata.AudioFeaturesSummary)
}

func TestInfer_ZeroWeightUsesFallback(t *testing.T) {
	e := newEngine(t)

	got := e.Infer([]domain.WeightedGenre{{Name: "pop", Weight: 0}}, nil, nil)

	// fallback profile plus the genre refinements of a mainstream single-genre list
	assert.InDelta(t, 50.75, got.Scores.Openness, 0.051)
	assert.Equal(t, 50.0, got.Scores.Extraversion)
	assert.Equal(t, 0.5, got.Metadata.ComplexityScore)
}

func TestInfer_SingleGenre(t *testing.T) {
	e := newEngine(t)

	got := e.Infer([]domain.WeightedGenre{{Name: "Pop", Weight: 10}}, nil, nil)

	assert.InDelta(t, 45.75, got.Scores.Openness, 0.051)
	assert.Equal(t, 55.0, got.Scores.Conscientiousness)
	assert.Equal(t, 75.0, got.Scores.Extraversion)
	assert.InDelta(t, 65.45, got.Scores.Agreeableness, 0.051)
	assert.Equal(t, 60.0, got.Scores.EmotionalStability)

	assert.Equal(t, "Highly Social Explorer", got.PersonalityType)
	assert.Equal(t,
		"You are energetically social and outwardly focused, with a strong appreciation for variety and exploration.",
		got.Descriptions["extraversion"])
	assert.Equal(t, 32.5, got.Confidence)

	md := got.Metadata
	assert.Equal(t, []string{"western"}, md.CulturalRegions)
	assert.Equal(t, []string{"pop"}, md.MatchedGenres)
	assert.Equal(t, 1.0, md.GenreDiversity)
	assert.Equal(t, 0.167, md.CulturalDiversity)
	assert.Equal(t, 0.3, md.ComplexityScore)
	assert.Equal(t, 1, md.TotalGenresAnalyzed)
}

func TestInfer_AudioStage(t *testing.T) {
	e := newEngine(t)
	track := domain.AudioFeatures{
		Valence: 0.7, Energy: 0.5, Danceability: 0.5, Acousticness: 0.1, Tempo: 120,
		Loudness: -8, Speechiness: 0.05, Mode: 1, TimeSignature: 4, DurationMs: 200000,
	}
	features := make([]domain.AudioFeatures, 20)
	for i := range features {
		features[i] = track
	}

	got := e.Infer([]domain.WeightedGenre{{Name: "pop", Weight: 10}}, features, nil)

	assert.InDelta(t, 45.8, got.Scores.Openness, 0.051)
	assert.InDelta(t, 56.5, got.Scores.Conscientiousness, 0.051)
	assert.InDelta(t, 78.0, got.Scores.Extraversion, 0.051)
	assert.InDelta(t, 70.85, got.Scores.Agreeableness, 0.051)
	assert.InDelta(t, 60.0, got.Scores.EmotionalStability, 0.051)

	md := got.Metadata
	assert.Equal(t, 20, md.AudioFeaturesAnalyzed)
	assert.Equal(t, 0.3, md.AudioFeaturesWeight)
	require.NotNil(t, md.AudioFeaturesSummary)
	assert.Equal(t, 0.7, md.AudioFeaturesSummary.Valence)
	assert.Equal(t, 36.5, got.Confidence)
}

func TestInfer_AudioWeightScalesWithSampleSize(t *testing.T) {
	e := newEngine(t)
	features := make([]domain.AudioFeatures, 10)

	got := e.Infer([]domain.WeightedGenre{{Name: "rock", Weight: 1}}, features, nil)

	assert.Equal(t, 0.15, got.Metadata.AudioFeaturesWeight)
}

func TestInfer_PopularityStage(t *testing.T) {
	meta := make([]domain.TrackPopularityRecord, 10)
	for i := range meta {
		meta[i] = domain.TrackPopularityRecord{ID: fmt.Sprint(i), Popularity: 80, Explicit: i < 6, ReleaseDate: "2025-01-01"}
	}
	genres := []domain.WeightedGenre{{Name: "pop", Weight: 10}}

	recent := newEngine(t).Infer(genres, nil, meta)
	assert.InDelta(t, 76.8, recent.Scores.Extraversion, 1e-9)
	assert.InDelta(t, 65.15, recent.Scores.Agreeableness, 0.051)
	assert.Equal(t, 55.0, recent.Scores.Conscientiousness)

	later := newEngine(t, fixedClock(2050)).Infer(genres, nil, meta)
	assert.InDelta(t, 76.2, later.Scores.Extraversion, 1e-9)
	assert.InDelta(t, 55.6, later.Scores.Conscientiousness, 1e-9)
}

func TestInfer_ScoresStayInRange(t *testing.T) {
	e := newEngine(t)
	kb := genre.DefaultKnowledgeBase()
	names := append(kb.Names(), "vietnamese indie rap", "zzz", "k-pop boy group")
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		genres := make([]domain.WeightedGenre, r.Intn(30))
		for j := range genres {
			genres[j] = domain.WeightedGenre{Name: names[r.Intn(len(names))], Weight: r.Float64() * 20}
		}
		features := make([]domain.AudioFeatures, r.Intn(40))
		for j := range features {
			features[j] = domain.AudioFeatures{
				Valence: r.Float64(), Energy: r.Float64(), Danceability: r.Float64(),
				Acousticness: r.Float64(), Instrumentalness: r.Float64(), Speechiness: r.Float64(),
				Tempo: 40 + r.Float64()*160, Loudness: -30 + r.Float64()*30,
				TimeSignature: 3 + r.Intn(3), DurationMs: 60000 + r.Intn(400000),
			}
		}
		meta := make([]domain.TrackPopularityRecord, r.Intn(20))
		for j := range meta {
			meta[j] = domain.TrackPopularityRecord{
				Popularity:  r.Intn(101),
				Explicit:    r.Intn(2) == 0,
				ReleaseDate: fmt.Sprintf("%d-01-01", 1960+r.Intn(66)),
			}
		}

		got := e.Infer(genres, features, meta)
		for _, tr := range domain.AllTraits {
			v := got.Scores.Get(tr)
			assert.GreaterOrEqual(t, v, MinScore, tr.String())
			assert.LessOrEqual(t, v, MaxScore, tr.String())
		}
		assert.GreaterOrEqual(t, got.Confidence, 0.0)
		assert.LessOrEqual(t, got.Confidence, 100.0)
		assert.LessOrEqual(t, len(got.Metadata.MatchedGenres), 5)
	}
}

func TestInfer_DegenerateWeights(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name   string
		genres []domain.WeightedGenre
	}{
		{name: "negative weight below a positive one", genres: []domain.WeightedGenre{{Name: "experimental", Weight: 10}, {Name: "pop", Weight: -3}}},
		{name: "weights near the float limit", genres: []domain.WeightedGenre{{Name: "pop", Weight: math.MaxFloat64}, {Name: "rock", Weight: math.MaxFloat64}}},
		{name: "infinite weight", genres: []domain.WeightedGenre{{Name: "jazz", Weight: math.Inf(1)}, {Name: "pop", Weight: 2}}},
		{name: "nan weight", genres: []domain.WeightedGenre{{Name: "jazz", Weight: math.NaN()}, {Name: "pop", Weight: 2}}},
		{name: "only negative weights", genres: []domain.WeightedGenre{{Name: "metal", Weight: -1}, {Name: "pop", Weight: math.Inf(-1)}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Infer(tc.genres, nil, nil)

			for _, tr := range domain.AllTraits {
				v := got.Scores.Get(tr)
				assert.False(t, math.IsNaN(v), tr.String())
				assert.GreaterOrEqual(t, v, MinScore, tr.String())
				assert.LessOrEqual(t, v, MaxScore, tr.String())
			}
			assert.GreaterOrEqual(t, got.Metadata.ComplexityScore, 0.0)
			assert.LessOrEqual(t, got.Metadata.ComplexityScore, 1.0)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 100.0)

			_, err := json.Marshal(got)
			require.NoError(t, err)
		})
	}
}

func TestInfer_ScaleInvariantWeights(t *testing.T) {
	e := newEngine(t)
	small := []domain.WeightedGenre{{Name: "pop", Weight: 2}, {Name: "rock", Weight: 1}}
	huge := []domain.WeightedGenre{{Name: "pop", Weight: math.MaxFloat64}, {Name: "rock", Weight: math.MaxFloat64 / 2}}

	assert.Equal(t, e.Infer(small, nil, nil).Scores, e.Infer(huge, nil, nil).Scores)
}

func TestGenreProfile_RoundsHalfToEven(t *testing.T) {
	kb, err := genre.NewKnowledgeBase(genre.Tables{Seeds: []genre.Seed{
		{Name: genre.FallbackGenre, Traits: domain.NewTraits(50, 50, 50, 50, 50), CulturalWeight: 1, Complexity: 0.5},
		{Name: "halfway", Traits: domain.NewTraits(62.5, 63.5, 50, 50, 50), CulturalWeight: 1, Complexity: 0.5},
	}})
	require.NoError(t, err)

	p := New(kb).genreProfile([]domain.WeightedGenre{{Name: "halfway", Weight: 1}})

	assert.Equal(t, 62.0, p.traits.Openness)
	assert.Equal(t, 64.0, p.traits.Conscientiousness)
}

func TestInfer_Idempotent(t *testing.T) {
	e := newEngine(t)
	genres := []domain.WeightedGenre{
		{Name: "k-pop", Weight: 12}, {Name: "vietnamese indie rap", Weight: 9},
		{Name: "latin", Weight: 6}, {Name: "afrobeat", Weight: 4}, {Name: "dark trap", Weight: 2},
	}
	features := []domain.AudioFeatures{
		{Valence: 0.2, Energy: 0.9, Danceability: 0.8, Tempo: 150, Loudness: -4, TimeSignature: 4, DurationMs: 250000},
		{Valence: 0.9, Energy: 0.3, Acousticness: 0.8, Tempo: 80, Loudness: -16, TimeSignature: 3, DurationMs: 180000},
	}
	meta := []domain.TrackPopularityRecord{{ID: "a", Popularity: 10, ReleaseDate: "1990"}, {ID: "b", Popularity: 90, ReleaseDate: "2024-03"}}

	first, err := json.Marshal(e.Infer(genres, features, meta))
	require.NoError(t, err)
	second, err := json.Marshal(e.Infer(genres, features, meta))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	var decoded domain.PersonalityResult
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, []string{"african", "korean", "latin", "vietnamese"}, decoded.Metadata.CulturalRegions)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		scores domain.Traits
		ctx    profileContext
		want   string
	}{
		{
			name:   "social with open secondary",
			scores: domain.NewTraits(70, 50, 80, 60, 55),
			ctx:    profileContext{cultural: 0.6, diversity: 0.9, complexity: 0.4},
			want:   "Global Explorer",
		},
		{
			name:   "open and complex",
			scores: domain.NewTraits(80, 50, 60, 60, 55),
			ctx:    profileContext{complexity: 0.8, diversity: 0.5},
			want:   "Intellectual Curious",
		},
		{
			name:   "open but simple falls to default",
			scores: domain.NewTraits(66, 50, 60, 60, 55),
			ctx:    profileContext{complexity: 0.6, diversity: 0.2},
			want:   "Moderately Creative Focused",
		},
		{
			name:   "harmonious connector",
			scores: domain.NewTraits(50, 50, 60, 80, 55),
			ctx:    profileContext{cultural: 0.5},
			want:   "Cosmopolitan Connector",
		},
		{
			name:   "organized default",
			scores: domain.NewTraits(50, 65, 60, 60, 55),
			ctx:    profileContext{diversity: 0.7},
			want:   "Moderately Organized Adventurer",
		},
		{
			name:   "ties keep canonical order",
			scores: domain.NewTraits(60, 60, 60, 60, 60),
			ctx:    profileContext{diversity: 0.85},
			want:   "Gently Creative Explorer",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.scores, tc.ctx))
		})
	}
}

func TestDescribe_SingleClausePriority(t *testing.T) {
	ctx := profileContext{complexity: 0.8, cultural: 0.6, diversity: 0.9}
	got := describe(domain.NewTraits(70, 50, 30, 65, 44.9), ctx)

	assert.Equal(t, "You are intellectually curious and creatively adventurous, drawn to sophisticated and nuanced expressions.", got["openness"])
	assert.Equal(t, "You are flexibly structured with adaptive planning, drawn to sophisticated and nuanced expressions.", got["conscientiousness"])
	assert.Equal(t, "You are reflectively introspective and preferring intimate connections, drawn to sophisticated and nuanced expressions.", got["extraversion"])
	assert.Equal(t, "You are highly empathetic and cooperation-focused, drawn to sophisticated and nuanced expressions.", got["agreeableness"])
	assert.Equal(t, "You are emotionally sensitive and deeply feeling, drawn to sophisticated and nuanced expressions.", got["emotional_stability"])

	got = describe(domain.NewTraits(50, 50, 50, 50, 50), profileContext{complexity: 0.5, cultural: 0.2, diversity: 0.5})
	assert.Equal(t, "You are emotionally responsive yet stable.", got["emotional_stability"])
}

func TestPositionWeightNeverNegative(t *testing.T) {
	assert.Equal(t, 1.0, positionWeight(0))
	assert.InDelta(t, 0.5, positionWeight(10), 1e-9)
	assert.Equal(t, 0.0, positionWeight(25))
}
