// Package mood labels tracks from their audio features and summarises the labels.
package mood

import (
	"github.com/tlhtlh2211/datavis-project2/internal/analytics/rules"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// Mood labels produced by Classify.
const (
	Euphoric    = "Euphoric"
	Happy       = "Happy"
	Melancholic = "Melancholic"
	Sad         = "Sad"
	Energetic   = "Energetic"
	Intense     = "Intense"
	Upbeat      = "Upbeat"
	Ambient     = "Ambient"
	Calm        = "Calm"
	Angsty      = "Angsty"
	Dark        = "Dark"
	Sentimental = "Sentimental"
	Nostalgic   = "Nostalgic"
	Groovy      = "Groovy"
	Atmospheric = "Atmospheric"
	Chill       = "Chill"
)

// Labels returns every label Classify can produce, in rule order.
func Labels() []string {
	return []string{
		Euphoric, Happy, Melancholic, Sad, Energetic, Intense, Upbeat, Ambient,
		Calm, Angsty, Dark, Sentimental, Nostalgic, Groovy, Atmospheric, Chill,
	}
}

type features = domain.AudioFeatures

func pick(cond func(features) bool, yes, no string) func(features) string {
	return func(f features) string {
		if cond(f) {
			return yes
		}
		return no
	}
}

// tree is evaluated top to bottom; ranges overlap, so order is significant.
var tree = []rules.Branch[features, string]{
	{
		When: func(f features) bool { return f.Valence > 0.65 && f.Energy > 0.55 && f.Mode == 1 },
		Then: pick(func(f features) bool { return f.Danceability > 0.7 }, Euphoric, Happy),
	},
	{
		When: func(f features) bool {
			return f.Valence < 0.4 && f.Energy < 0.45 && (f.Mode == 0 || f.Acousticness > 0.4)
		},
		Then: pick(func(f features) bool { return f.Acousticness > 0.7 }, Melancholic, Sad),
	},
	{
		When: func(f features) bool { return f.Energy > 0.75 },
		Then: func(f features) string {
			switch {
			case f.Danceability > 0.65:
				return Energetic
			case f.Valence < 0.4:
				return Intense
			default:
				return Upbeat
			}
		},
	},
	{
		When: func(f features) bool { return f.Acousticness > 0.65 && f.Energy < 0.55 && f.Tempo < 100 },
		Then: pick(func(f features) bool { return f.Instrumentalness > 0.5 }, Ambient, Calm),
	},
	{
		When: func(f features) bool { return f.Valence < 0.4 && f.Energy > 0.6 && f.Loudness > -8 },
		Then: rules.Const[features](Angsty),
	},
	{
		When: func(f features) bool { return f.Valence < 0.3 && f.Mode == 0 && rules.Between(f.Energy, 0.4, 0.7) },
		Then: rules.Const[features](Dark),
	},
	{
		When: func(f features) bool {
			return rules.Within(f.Valence, 0.4, 0.6) && f.Energy < 0.5 && f.Acousticness > 0.4
		},
		Then: rules.Const[features](Sentimental),
	},
	{
		When: func(f features) bool {
			return rules.Within(f.Valence, 0.4, 0.7) && rules.Within(f.Acousticness, 0.4, 0.7) && f.Energy < 0.65
		},
		Then: rules.Const[features](Nostalgic),
	},
}

func catchAll(f features) string {
	switch {
	case f.Danceability > 0.6 && f.Energy < 0.6:
		return Groovy
	case f.Instrumentalness > 0.5:
		return Atmospheric
	default:
		return Chill
	}
}

// Classify returns the mood label of a single track. It is total and deterministic.
func Classify(f domain.AudioFeatures) string {
	return rules.First(tree, f, catchAll)
}
