package domain

import "math"

// Trait identifies one of the five personality dimensions.
type Trait int

const (
	Openness Trait = iota
	Conscientiousness
	Extraversion
	Agreeableness
	EmotionalStability
)

// AllTraits lists every trait in canonical order. Ties are resolved in this order.
var AllTraits = [...]Trait{Openness, Conscientiousness, Extraversion, Agreeableness, EmotionalStability}

var traitNames = [...]string{"openness", "conscientiousness", "extraversion", "agreeableness", "emotional_stability"}

func (t Trait) String() string {
	if t < 0 || int(t) >= len(traitNames) {
		return "unknown"
	}
	return traitNames[t]
}

// Traits is a five-dimensional trait vector.
type Traits struct {
	Openness           float64 `json:"openness"`
	Conscientiousness  float64 `json:"conscientiousness"`
	Extraversion       float64 `json:"extraversion"`
	Agreeableness      float64 `json:"agreeableness"`
	EmotionalStability float64 `json:"emotional_stability"`
}

// NewTraits builds a vector from values in canonical order.
func NewTraits(o, c, e, a, s float64) Traits {
	return Traits{Openness: o, Conscientiousness: c, Extraversion: e, Agreeableness: a, EmotionalStability: s}
}

// Get returns the value of a single trait.
func (v Traits) Get(t Trait) float64 {
	switch t {
	case Openness:
		return v.Openness
	case Conscientiousness:
		return v.Conscientiousness
	case Extraversion:
		return v.Extraversion
	case Agreeableness:
		return v.Agreeableness
	case EmotionalStability:
		return v.EmotionalStability
	}
	return 0
}

// Set updates a single trait in place.
func (v *Traits) Set(t Trait, value float64) {
	switch t {
	case Openness:
		v.Openness = value
	case Conscientiousness:
		v.Conscientiousness = value
	case Extraversion:
		v.Extraversion = value
	case Agreeableness:
		v.Agreeableness = value
	case EmotionalStability:
		v.EmotionalStability = value
	}
}

// Map applies fn to every trait and returns the result.
func (v Traits) Map(fn func(Trait, float64) float64) Traits {
	var out Traits
	for _, t := range AllTraits {
		out.Set(t, fn(t, v.Get(t)))
	}
	return out
}

// Add returns the element-wise sum.
func (v Traits) Add(o Traits) Traits {
	return v.Map(func(t Trait, x float64) float64 { return x + o.Get(t) })
}

// Scale multiplies every trait by k.
func (v Traits) Scale(k float64) Traits {
	return v.Map(func(_ Trait, x float64) float64 { return x * k })
}

// Clamp bounds every trait to [lo, hi]. NaN becomes lo.
func (v Traits) Clamp(lo, hi float64) Traits {
	return v.Map(func(_ Trait, x float64) float64 { return ClampTo(x, lo, hi) })
}

// ClampTo bounds x to [lo, hi], mapping NaN to lo.
func ClampTo(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

// Round rounds every trait to the given number of decimals.
func (v Traits) Round(decimals int) Traits {
	return v.Map(func(_ Trait, x float64) float64 { return RoundTo(x, decimals) })
}

// RoundTo rounds x half away from zero to the given number of decimals.
func RoundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
