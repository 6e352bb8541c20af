package genre

import "strings"

// Confidence levels assigned by the matcher.
const (
	ExactConfidence    = 1.0
	CulturalConfidence = 0.9
	MinConfidence      = 0.3
)

// Method records which matcher step produced a Match.
type Method string

const (
	MethodExact    Method = "exact"
	MethodSynonym  Method = "synonym"
	MethodCultural Method = "cultural"
	MethodPartial  Method = "partial"
	MethodFallback Method = "fallback"
)

// Match is the result of resolving a free-text tag.
type Match struct {
	Canonical  string
	Confidence float64
	Method     Method
}

// Matcher resolves free-text genre tags against a knowledge base.
type Matcher struct {
	kb *KnowledgeBase
}

// NewMatcher returns a matcher backed by kb.
func NewMatcher(kb *KnowledgeBase) *Matcher {
	return &Matcher{kb: kb}
}

// KnowledgeBase returns the table the matcher resolves against.
func (m *Matcher) KnowledgeBase() *KnowledgeBase { return m.kb }

// Resolve maps raw to a canonical genre. Every tag resolves to something, so
// unusual tags still contribute with at least MinConfidence.
func (m *Matcher) Resolve(raw string) Match {
	input := normalize(raw)

	if _, ok := m.kb.entries[input]; ok {
		return Match{Canonical: input, Confidence: ExactConfidence, Method: MethodExact}
	}

	if target, ok := m.kb.synonyms[input]; ok {
		if _, canonical := m.kb.entries[target]; canonical {
			return Match{Canonical: target, Confidence: ExactConfidence, Method: MethodSynonym}
		}
	}

	if fusion, ok := m.cultural(input); ok {
		return Match{Canonical: fusion, Confidence: CulturalConfidence, Method: MethodCultural}
	}

	best, score, found := m.partial(input)
	if !found {
		return Match{Canonical: FallbackGenre, Confidence: MinConfidence, Method: MethodFallback}
	}
	return Match{Canonical: best, Confidence: max(score, MinConfidence), Method: MethodPartial}
}

func (m *Matcher) cultural(input string) (string, bool) {
	for _, rule := range m.kb.cultural {
		if !containsAny(input, rule.Markers) {
			continue
		}
		for _, style := range rule.Styles {
			if containsAny(input, style.Tokens) {
				return style.Genre, true
			}
		}
	}
	return "", false
}

// partial scans canonical genres that contain or are contained in the input and
// scores them by token overlap. A candidate only replaces the best on a strictly
// higher score, so a containment with zero overlap never counts as found.
func (m *Matcher) partial(input string) (string, float64, bool) {
	if input == "" {
		return "", 0, false
	}
	inTokens := tokenSet(input)

	best, bestScore, found := "", 0.0, false
	for _, name := range m.kb.order {
		if !strings.Contains(input, name) && !strings.Contains(name, input) {
			continue
		}
		if score := jaccard(inTokens, tokenSet(name)); score > bestScore {
			best, bestScore, found = name, score, true
		}
	}
	return best, bestScore, found
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
