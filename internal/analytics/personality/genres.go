package personality

import (
	"math"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// rankDecay is the position weight lost per rank.
const rankDecay = 0.05

type genreBase struct {
	traits      domain.Traits
	complexity  float64
	matched     []string
	confidences []float64
	unique      int
	regions     map[string]struct{}
}

// usableWeight reports whether a genre weight can take part in a weighted mean.
func usableWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 1)
}

// peakWeight returns the largest usable weight, or 0 if there is none.
func peakWeight(genres []domain.WeightedGenre) float64 {
	var peak float64
	for _, g := range genres {
		if usableWeight(g.Weight) {
			peak = max(peak, g.Weight)
		}
	}
	return peak
}

func positionWeight(rank int) float64 {
	return max(0, 1-float64(rank)*rankDecay)
}

// genreProfile computes the weighted trait means of the matched genres. Trait
// means are rounded half to even to whole points. Weights that are not positive
// and finite only count as matches. With no usable weight the fallback entry
// is returned.
func (e *Engine) genreProfile(genres []domain.WeightedGenre) genreBase {
	p := genreBase{
		matched:     make([]string, 0, len(genres)),
		confidences: make([]float64, 0, len(genres)),
		regions:     make(map[string]struct{}),
	}

	var sum domain.Traits
	var complexity, total float64
	peak := peakWeight(genres)
	seen := make(map[string]struct{}, len(genres))
	for i, g := range genres {
		m := e.matcher.Resolve(g.Name)
		entry, ok := e.kb.Lookup(m.Canonical)
		if !ok {
			entry = e.kb.Fallback()
		}

		if usableWeight(g.Weight) {
			w := g.Weight / peak * positionWeight(i) * entry.CulturalWeight * m.Confidence
			sum = sum.Add(entry.Traits.Scale(w))
			complexity += entry.Complexity * w
			total += w
		}

		p.matched = append(p.matched, m.Canonical)
		p.confidences = append(p.confidences, m.Confidence)
		seen[m.Canonical] = struct{}{}
		if region, ok := e.kb.Region(m.Canonical); ok {
			p.regions[region] = struct{}{}
		}
	}
	p.unique = len(seen)

	if total <= 0 {
		fb := e.kb.Fallback()
		p.traits, p.complexity = fb.Traits, fb.Complexity
		return p
	}
	p.traits = sum.Scale(1 / total).Map(func(_ domain.Trait, x float64) float64 { return math.RoundToEven(x) })
	p.complexity = domain.ClampTo(complexity/total, 0, 1)
	return p
}
