package personality

import (
	"github.com/tlhtlh2211/datavis-project2/internal/analytics/rules"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

const (
	// audioSaturation is the track count at which audio evidence reaches full weight.
	audioSaturation = 20.0
	// maxAudioShare caps the contribution of the audio stage.
	maxAudioShare = 0.3
)

type summary = domain.FeatureSummary

var audioTable = []rules.Adjustment[summary]{
	{Name: "positive valence", When: func(s summary) bool { return s.Valence > 0.6 }, Effect: domain.Traits{Agreeableness: 15, Extraversion: 10}},
	{Name: "high energy", When: func(s summary) bool { return s.Energy > 0.7 }, Effect: domain.Traits{Extraversion: 12}},
	{Name: "very high energy", When: func(s summary) bool { return s.Energy > 0.85 }, Effect: domain.Traits{EmotionalStability: -5}},
	{Name: "low energy", When: func(s summary) bool { return s.Energy < 0.3 }, Effect: domain.Traits{Extraversion: -8, EmotionalStability: 5}},
	{Name: "acoustic", When: func(s summary) bool { return s.Acousticness > 0.6 }, Effect: domain.Traits{Openness: 10, EmotionalStability: 8}},
	{Name: "instrumental", When: func(s summary) bool { return s.Instrumentalness > 0.5 }, Effect: domain.Traits{Openness: 12, Conscientiousness: 5}},
	{Name: "fast tempo", When: func(s summary) bool { return s.Tempo > 140 }, Effect: domain.Traits{Extraversion: 6, Conscientiousness: -3}},
	{Name: "slow tempo", When: func(s summary) bool { return s.Tempo < 90 }, Effect: domain.Traits{Openness: 5, EmotionalStability: 5}},
	{Name: "loud", When: func(s summary) bool { return s.Loudness > -5 }, Effect: domain.Traits{Extraversion: 5}},
	{Name: "quiet", When: func(s summary) bool { return s.Loudness < -15 }, Effect: domain.Traits{EmotionalStability: 5}},
	{Name: "speech heavy", When: func(s summary) bool { return s.Speechiness > 0.33 }, Effect: domain.Traits{Openness: 8, Conscientiousness: 3}},
}

func audioAdjustment(s domain.FeatureSummary) domain.Traits {
	return rules.Sum(audioTable, s)
}

func summarize(features []domain.AudioFeatures) domain.FeatureSummary {
	var s domain.FeatureSummary
	for _, f := range features {
		s.Valence += f.Valence
		s.Energy += f.Energy
		s.Danceability += f.Danceability
		s.Acousticness += f.Acousticness
		s.Instrumentalness += f.Instrumentalness
		s.Tempo += f.Tempo
		s.Loudness += f.Loudness
		s.Speechiness += f.Speechiness
	}
	if n := float64(len(features)); n > 0 {
		s.Valence /= n
		s.Energy /= n
		s.Danceability /= n
		s.Acousticness /= n
		s.Instrumentalness /= n
		s.Tempo /= n
		s.Loudness /= n
		s.Speechiness /= n
	}
	return s
}

func roundSummary(s *domain.FeatureSummary) *domain.FeatureSummary {
	if s == nil {
		return nil
	}
	return &domain.FeatureSummary{
		Valence:          domain.RoundTo(s.Valence, 3),
		Energy:           domain.RoundTo(s.Energy, 3),
		Danceability:     domain.RoundTo(s.Danceability, 3),
		Acousticness:     domain.RoundTo(s.Acousticness, 3),
		Instrumentalness: domain.RoundTo(s.Instrumentalness, 3),
		Tempo:            domain.RoundTo(s.Tempo, 3),
		Loudness:         domain.RoundTo(s.Loudness, 3),
		Speechiness:      domain.RoundTo(s.Speechiness, 3),
	}
}
