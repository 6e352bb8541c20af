package personality

import (
	"github.com/tlhtlh2211/datavis-project2/internal/analytics/rules"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// Level thresholds for trait descriptions.
const (
	highLevel   = 65.0
	mediumLevel = 45.0
)

type phrases struct{ high, medium, low string }

var traitPhrases = map[domain.Trait]phrases{
	domain.Openness: {
		high:   "intellectually curious and creatively adventurous",
		medium: "balanced between traditional and innovative approaches",
		low:    "practical and preferring established methods",
	},
	domain.Conscientiousness: {
		high:   "highly organized and goal-oriented",
		medium: "flexibly structured with adaptive planning",
		low:    "spontaneous and preferring flexible approaches",
	},
	domain.Extraversion: {
		high:   "energetically social and outwardly focused",
		medium: "socially balanced with both outgoing and introspective tendencies",
		low:    "reflectively introspective and preferring intimate connections",
	},
	domain.Agreeableness: {
		high:   "highly empathetic and cooperation-focused",
		medium: "diplomatically balanced between empathy and assertion",
		low:    "analytically objective and logic-focused",
	},
	domain.EmotionalStability: {
		high:   "emotionally resilient and stress-resistant",
		medium: "emotionally responsive yet stable",
		low:    "emotionally sensitive and deeply feeling",
	},
}

// clauses picks at most one contextual clause: complexity, then cultural
// breadth, then genre diversity.
var clauses = []rules.Branch[profileContext, string]{
	{When: func(c profileContext) bool { return c.complexity > 0.7 }, Then: rules.Const[profileContext]("drawn to sophisticated and nuanced expressions")},
	{When: func(c profileContext) bool { return c.complexity < 0.3 }, Then: rules.Const[profileContext]("preferring clear and accessible forms")},
	{When: func(c profileContext) bool { return c.cultural > 0.5 }, Then: rules.Const[profileContext]("showing global cultural appreciation")},
	{When: func(c profileContext) bool { return c.cultural > 0.3 }, Then: rules.Const[profileContext]("with cross-cultural interests")},
	{When: func(c profileContext) bool { return c.diversity > 0.7 }, Then: rules.Const[profileContext]("with a strong appreciation for variety and exploration")},
	{When: func(c profileContext) bool { return c.diversity < 0.3 }, Then: rules.Const[profileContext]("with focused and consistent preferences")},
}

func level(p phrases, score float64) string {
	switch {
	case score >= highLevel:
		return p.high
	case score >= mediumLevel:
		return p.medium
	default:
		return p.low
	}
}

func describe(scores domain.Traits, ctx profileContext) map[string]string {
	clause := rules.First(clauses, ctx, rules.Const[profileContext](""))
	out := make(map[string]string, len(domain.AllTraits))
	for _, t := range domain.AllTraits {
		base := level(traitPhrases[t], scores.Get(t))
		if clause == "" {
			out[t.String()] = "You are " + base + "."
			continue
		}
		out[t.String()] = "You are " + base + ", " + clause + "."
	}
	return out
}
