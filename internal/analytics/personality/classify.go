package personality

import (
	"slices"

	"github.com/tlhtlh2211/datavis-project2/internal/analytics/rules"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

type profileContext struct {
	complexity float64
	diversity  float64
	cultural   float64
}

var baseTypes = map[domain.Trait]string{
	domain.Extraversion:       "Social",
	domain.Openness:           "Creative",
	domain.Conscientiousness:  "Organized",
	domain.Agreeableness:      "Harmonious",
	domain.EmotionalStability: "Steady",
}

func complexityModifier(c float64) string {
	switch {
	case c > 0.7:
		return "Intellectual"
	case c > 0.5:
		return "Thoughtful"
	default:
		return "Accessible"
	}
}

func diversityModifier(d float64) string {
	switch {
	case d > 0.8:
		return "Explorer"
	case d > 0.6:
		return "Adventurer"
	case d > 0.4:
		return "Curious"
	default:
		return "Focused"
	}
}

func culturalModifier(c float64) string {
	switch {
	case c > 0.5:
		return "Global"
	case c > 0.3:
		return "Cosmopolitan"
	default:
		return "Traditional"
	}
}

func intensity(score float64) string {
	switch {
	case score > 70:
		return "Highly"
	case score > 60:
		return "Moderately"
	default:
		return "Gently"
	}
}

// ranking orders the traits by descending score; ties keep canonical order.
func ranking(scores domain.Traits) []domain.Trait {
	order := slices.Clone(domain.AllTraits[:])
	slices.SortStableFunc(order, func(a, b domain.Trait) int {
		switch sa, sb := scores.Get(a), scores.Get(b); {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return 0
	})
	return order
}

type typeInput struct {
	dominant, secondary domain.Trait
	score               float64
	ctx                 profileContext
}

var typeTable = []rules.Branch[typeInput, string]{
	{
		When: func(in typeInput) bool {
			return in.dominant == domain.Extraversion && in.secondary == domain.Openness
		},
		Then: func(in typeInput) string {
			return culturalModifier(in.ctx.cultural) + " " + diversityModifier(in.ctx.diversity)
		},
	},
	{
		When: func(in typeInput) bool { return in.dominant == domain.Openness && in.ctx.complexity > 0.7 },
		Then: func(in typeInput) string {
			return complexityModifier(in.ctx.complexity) + " " + diversityModifier(in.ctx.diversity)
		},
	},
	{
		When: func(in typeInput) bool { return in.dominant == domain.Agreeableness && in.ctx.cultural > 0.4 },
		Then: func(in typeInput) string { return culturalModifier(in.ctx.cultural) + " Connector" },
	},
}

func defaultType(in typeInput) string {
	return intensity(in.score) + " " + baseTypes[in.dominant] + " " + diversityModifier(in.ctx.diversity)
}

// classify names the personality type from the dominant and secondary traits.
func classify(scores domain.Traits, ctx profileContext) string {
	order := ranking(scores)
	in := typeInput{dominant: order[0], secondary: order[1], score: scores.Get(order[0]), ctx: ctx}
	return rules.First(typeTable, in, defaultType)
}
