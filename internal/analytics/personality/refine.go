package personality

import (
	"strconv"

	"github.com/tlhtlh2211/datavis-project2/internal/analytics/rules"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

const (
	// secondaryWeight scales the whole refinement stage.
	secondaryWeight = 0.15
	// nicheWindow is the number of top genres inspected for the niche ratio.
	nicheWindow = 10
	// recentYears is how far back a release still counts as recent.
	recentYears = 2
)

// signals are the indicators the refinement tables read. The has* flags gate
// each table.
type signals struct {
	hasAudio       bool
	avgComplexity  float64
	avgDurationMs  float64
	valenceRange   float64
	energyVariance float64
	danceability   float64
	loudness       float64
	valence        float64

	hasGenres       bool
	genreNicheRatio float64
	genreDiversity  float64

	hasMeta         bool
	popVariance     float64
	mainstreamRatio float64
	obscureRatio    float64
	explicitRatio   float64

	hasYears    bool
	yearSpread  int
	recentRatio float64
	yearsOld    float64
}

var audioRefinements = []rules.Adjustment[signals]{
	{Name: "complex tracks", When: func(s signals) bool { return s.avgComplexity > 0.5 }, Effect: domain.Traits{Openness: 8}},
	{Name: "long tracks", When: func(s signals) bool { return s.avgDurationMs > 240000 }, Effect: domain.Traits{Openness: 5}},
	{Name: "wide emotional range", When: func(s signals) bool { return s.valenceRange > 0.6 }, Effect: domain.Traits{Openness: 6}},
	{Name: "steady energy", When: func(s signals) bool { return s.energyVariance < 0.02 }, Effect: domain.Traits{Conscientiousness: 6}},
	{Name: "narrow emotional range", When: func(s signals) bool { return s.valenceRange < 0.3 }, Effect: domain.Traits{Conscientiousness: 4}},
	{Name: "danceable", When: func(s signals) bool { return s.danceability > 0.65 }, Effect: domain.Traits{Extraversion: 6}},
	{Name: "loud mix", When: func(s signals) bool { return s.loudness > -6 }, Effect: domain.Traits{Extraversion: 4}},
	{Name: "bright mood", When: func(s signals) bool { return s.valence > 0.6 }, Effect: domain.Traits{Agreeableness: 6}},
	{Name: "simple tracks", When: func(s signals) bool { return s.avgComplexity < 0.35 }, Effect: domain.Traits{Agreeableness: 4}},
	{
		Name: "balanced listening",
		When: func(s signals) bool {
			return s.energyVariance < 0.03 && rules.Within(s.valence, 0.4, 0.65) && rules.Within(s.avgComplexity, 0.35, 0.6)
		},
		Effect: domain.Traits{EmotionalStability: 8},
	},
}

var genreRefinements = []rules.Adjustment[signals]{
	{Name: "niche taste", When: func(s signals) bool { return s.genreNicheRatio > 0.5 }, Effect: domain.Traits{Openness: 10}},
	{Name: "diverse genres", When: func(s signals) bool { return s.genreDiversity > 0.7 }, Effect: domain.Traits{Openness: 5}},
	{Name: "mainstream taste", When: func(s signals) bool { return s.genreNicheRatio < 0.2 }, Effect: domain.Traits{Agreeableness: 3}},
}

var popularityRefinements = []rules.Adjustment[signals]{
	{Name: "uneven popularity", When: func(s signals) bool { return s.popVariance > 400 }, Effect: domain.Traits{Openness: 5}},
	{Name: "chart listener", When: func(s signals) bool { return s.mainstreamRatio > 0.6 }, Effect: domain.Traits{Extraversion: 5, Agreeableness: 3}},
	{Name: "deep cuts", When: func(s signals) bool { return s.obscureRatio > 0.3 }, Effect: domain.Traits{Openness: 8, Extraversion: -3}},
	{Name: "explicit content", When: func(s signals) bool { return s.explicitRatio > 0.5 }, Effect: domain.Traits{Agreeableness: -5, Extraversion: 3}},
	{Name: "wide era span", When: func(s signals) bool { return s.hasYears && s.yearSpread > 20 }, Effect: domain.Traits{Openness: 6}},
	{Name: "new releases", When: func(s signals) bool { return s.hasYears && s.recentRatio > 0.7 }, Effect: domain.Traits{Extraversion: 4}},
	{Name: "older catalogue", When: func(s signals) bool { return s.hasYears && s.yearsOld > 15 }, Effect: domain.Traits{Conscientiousness: 4}},
}

func refinement(s signals) domain.Traits {
	var total domain.Traits
	if s.hasAudio {
		total = total.Add(rules.Sum(audioRefinements, s))
	}
	if s.hasGenres {
		total = total.Add(rules.Sum(genreRefinements, s))
	}
	if s.hasMeta {
		total = total.Add(rules.Sum(popularityRefinements, s))
	}
	return total
}

func complexityProxy(f domain.AudioFeatures) float64 {
	return (1-f.Speechiness)*0.3 + f.Instrumentalness*0.4 + (float64(f.TimeSignature)/7)*0.3
}

func (e *Engine) collectSignals(base genreBase, diversity float64, features []domain.AudioFeatures, meta []domain.TrackPopularityRecord) signals {
	var s signals

	if n := len(features); n > 0 {
		s.hasAudio = true
		valences := make([]float64, n)
		energies := make([]float64, n)
		var complexity, duration, dance, loud float64
		for i, f := range features {
			valences[i], energies[i] = f.Valence, f.Energy
			complexity += complexityProxy(f)
			duration += float64(f.DurationMs)
			dance += f.Danceability
			loud += f.Loudness
		}
		fn := float64(n)
		s.avgComplexity = complexity / fn
		s.avgDurationMs = duration / fn
		s.danceability = dance / fn
		s.loudness = loud / fn
		s.valence = mean(valences)
		s.valenceRange = spread(valences)
		s.energyVariance = variance(energies)
	}

	if len(base.matched) > 0 {
		s.hasGenres = true
		window := base.matched[:min(nicheWindow, len(base.matched))]
		niche := 0
		for _, name := range window {
			if !e.kb.IsMainstream(name) {
				niche++
			}
		}
		s.genreNicheRatio = float64(niche) / float64(len(window))
		s.genreDiversity = diversity
	}

	if n := len(meta); n > 0 {
		s.hasMeta = true
		pops := make([]float64, n)
		var hits, obscure, explicit int
		years := make([]float64, 0, n)
		for i, m := range meta {
			pops[i] = float64(m.Popularity)
			if m.Popularity > 70 {
				hits++
			}
			if m.Popularity < 30 {
				obscure++
			}
			if m.Explicit {
				explicit++
			}
			if y, ok := releaseYear(m.ReleaseDate); ok {
				years = append(years, float64(y))
			}
		}
		fn := float64(n)
		s.popVariance = variance(pops)
		s.mainstreamRatio = float64(hits) / fn
		s.obscureRatio = float64(obscure) / fn
		s.explicitRatio = float64(explicit) / fn

		if len(years) > 0 {
			ref := float64(e.now().Year())
			recent := 0
			for _, y := range years {
				if ref-y <= recentYears {
					recent++
				}
			}
			s.hasYears = true
			s.yearSpread = int(spread(years))
			s.recentRatio = float64(recent) / float64(len(years))
			s.yearsOld = ref - mean(years)
		}
	}

	return s
}

// releaseYear parses the year of a catalogue release date ("2019", "2019-04" or
// "2019-04-12").
func releaseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the population variance.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return sq / float64(len(xs))
}

func spread(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo, hi = min(lo, x), max(hi, x)
	}
	return hi - lo
}
