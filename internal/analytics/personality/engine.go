// Package personality infers a five-trait listener profile from weighted genres,
// optional audio features and optional track metadata.
package personality

import (
	"maps"
	"slices"
	"time"

	"github.com/tlhtlh2211/datavis-project2/internal/analytics/genre"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Engine runs the inference stages. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	kb      *genre.KnowledgeBase
	matcher *genre.Matcher
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to judge release-date recency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an engine backed by kb.
func New(kb *genre.KnowledgeBase, opts ...Option) *Engine {
	e := &Engine{kb: kb, matcher: genre.NewMatcher(kb), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Infer derives a personality profile. Genres are in rank order. Features and
// meta may be nil. Infer never fails; degenerate input yields the neutral
// fallback profile.
func (e *Engine) Infer(genres []domain.WeightedGenre, features []domain.AudioFeatures, meta []domain.TrackPopularityRecord) domain.PersonalityResult {
	base := e.genreProfile(genres)
	scores := base.traits

	var audioWeight float64
	var summary *domain.FeatureSummary
	if len(features) > 0 {
		s := summarize(features)
		summary = &s
		audioWeight = min(float64(len(features))/audioSaturation, 1) * maxAudioShare
		scores = scores.Add(audioAdjustment(s).Scale(audioWeight)).Clamp(MinScore, MaxScore)
	}

	diversity := 0.0
	if len(genres) > 0 {
		diversity = min(float64(base.unique)/float64(len(genres)), 1)
	}
	cultural := float64(len(base.regions)) / float64(genre.RegionCount)

	sig := e.collectSignals(base, diversity, features, meta)
	scores = scores.Add(refinement(sig).Scale(secondaryWeight)).Clamp(MinScore, MaxScore)
	scores = scores.Round(1)

	ctx := profileContext{complexity: base.complexity, diversity: diversity, cultural: cultural}

	regions := slices.AppendSeq(make([]string, 0, len(base.regions)), maps.Keys(base.regions))
	slices.Sort(regions)
	matched := base.matched
	if len(matched) > 5 {
		matched = matched[:5]
	}

	return domain.PersonalityResult{
		Scores:          scores,
		Descriptions:    describe(scores, ctx),
		PersonalityType: classify(scores, ctx),
		Confidence:      confidence(genres, base.confidences, len(features)),
		Metadata: domain.AnalysisMetadata{
			GenreDiversity:        domain.RoundTo(diversity, 3),
			CulturalDiversity:     domain.RoundTo(cultural, 3),
			ComplexityScore:       domain.RoundTo(base.complexity, 3),
			CulturalRegions:       regions,
			MatchedGenres:         slices.Clone(matched),
			TotalGenresAnalyzed:   len(genres),
			AudioFeaturesAnalyzed: len(features),
			AudioFeaturesWeight:   domain.RoundTo(audioWeight, 3),
			AudioFeaturesSummary:  roundSummary(summary),
		},
	}
}
