package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

func TestMatcher_Resolve(t *testing.T) {
	m := NewMatcher(DefaultKnowledgeBase())

	tests := []struct {
		name       string
		input      string
		canonical  string
		confidence float64
		method     Method
	}{
		{name: "exact", input: "pop", canonical: "pop", confidence: 1.0, method: MethodExact},
		{name: "exact ignores case and padding", input: "  Dance Pop ", canonical: "dance pop", confidence: 1.0, method: MethodExact},
		{name: "exact wins over synonym", input: "edm", canonical: "edm", confidence: 1.0, method: MethodExact},
		{name: "synonym", input: "hiphop", canonical: "hip hop", confidence: 1.0, method: MethodSynonym},
		{name: "synonym indie", input: "Indie", canonical: "indie rock", confidence: 1.0, method: MethodSynonym},
		{name: "cultural indie has priority over rap", input: "vietnamese indie rap", canonical: "vietnam indie", confidence: 0.9, method: MethodCultural},
		{name: "cultural hip hop", input: "viet hip hop", canonical: "vietnamese hip hop", confidence: 0.9, method: MethodCultural},
		{name: "cultural lofi", input: "vietnam lofi", canonical: "vietnamese lo-fi", confidence: 0.9, method: MethodCultural},
		{name: "synonym cycle falls through to partial", input: "vietnamese", canonical: "vietnamese lo-fi", confidence: 0.5, method: MethodPartial},
		{name: "partial overlap", input: "modern rock", canonical: "rock", confidence: 0.5, method: MethodPartial},
		{name: "zero overlap containment is ignored", input: "dark trap", canonical: "trap", confidence: 0.5, method: MethodPartial},
		{name: "partial overlap of a third", input: "k-pop boy group", canonical: "k-pop", confidence: 1.0 / 3.0, method: MethodPartial},
		{name: "partial score raised to floor", input: "a b c d pop", canonical: "pop", confidence: 0.3, method: MethodPartial},
		{name: "fallback", input: "zzz-unknown-genre-zzz", canonical: "unknown", confidence: 0.3, method: MethodFallback},
		{name: "empty input", input: "", canonical: "unknown", confidence: 0.3, method: MethodFallback},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Resolve(tc.input)
			assert.Equal(t, tc.canonical, got.Canonical)
			assert.InDelta(t, tc.confidence, got.Confidence, 1e-9)
			assert.Equal(t, tc.method, got.Method)
		})
	}
}

func TestMatcher_ResolveAlwaysCanonical(t *testing.T) {
	kb := DefaultKnowledgeBase()
	m := NewMatcher(kb)

	for _, raw := range []string{"pop", "art rock", "lofi", "bedroom pop", "?", "shoegaze revival", "rnb"} {
		got := m.Resolve(raw)
		_, ok := kb.Lookup(got.Canonical)
		assert.Truef(t, ok, "%q resolved to non-canonical %q", raw, got.Canonical)
		assert.GreaterOrEqual(t, got.Confidence, MinConfidence)
		assert.LessOrEqual(t, got.Confidence, 1.0)
	}
}

func TestKnowledgeBase_Region(t *testing.T) {
	kb := DefaultKnowledgeBase()

	tests := map[string]string{
		"k-pop":         "korean",
		"j-pop":         "japanese",
		"v-pop":         "vietnamese",
		"vietnam indie": "vietnamese",
		"latin":         "latin",
		"rock":          "western",
		"pop":           "western",
		"reggae":        "african",
		"afrobeat":      "african",
	}
	for name, want := range tests {
		got, ok := kb.Region(name)
		assert.Truef(t, ok, "%s should have a region", name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"indie rock", "dance pop", "post-punk", "unknown"} {
		_, ok := kb.Region(name)
		assert.Falsef(t, ok, "%s should not have a region", name)
	}
}

func TestNewKnowledgeBase_Validation(t *testing.T) {
	valid := seed(FallbackGenre, 50, 50, 50, 50, 50, 1, 0.5)

	_, err := NewKnowledgeBase(Tables{Seeds: []Seed{seed("pop", 1, 1, 1, 1, 1, 1, 0.3)}})
	assert.Error(t, err, "missing fallback")

	_, err = NewKnowledgeBase(Tables{Seeds: []Seed{valid, seed("Pop", 1, 1, 1, 1, 1, 1, 0.3), seed("pop ", 1, 1, 1, 1, 1, 1, 0.3)}})
	assert.Error(t, err, "duplicate after normalisation")

	_, err = NewKnowledgeBase(Tables{Seeds: []Seed{valid, seed("pop", 1, 1, 1, 1, 1, 0, 0.3)}})
	assert.Error(t, err, "zero cultural weight")

	_, err = NewKnowledgeBase(Tables{
		Seeds:    []Seed{valid},
		Cultural: []CulturalRule{{Markers: []string{"x"}, Styles: []StyleFusion{{Tokens: []string{"y"}, Genre: "missing"}}}},
	})
	assert.Error(t, err, "fusion target missing")

	kb, err := NewKnowledgeBase(Tables{Seeds: []Seed{valid}, Mainstream: []string{" Unknown "}})
	require.NoError(t, err)
	assert.Equal(t, 1, kb.Len())
	assert.True(t, kb.IsMainstream("unknown"))
	assert.Equal(t, domain.NewTraits(50, 50, 50, 50, 50), kb.Fallback().Traits)
}

func TestDefaultKnowledgeBase_Order(t *testing.T) {
	kb := DefaultKnowledgeBase()
	names := kb.Names()
	require.Len(t, names, len(DefaultSeeds))
	assert.Equal(t, "pop", names[0])
	assert.Equal(t, FallbackGenre, names[len(names)-1])
}
