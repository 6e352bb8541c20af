// Package genre holds the genre knowledge base and the free-text genre matcher.
package genre

import (
	"fmt"
	"strings"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// Entry is the trait profile of one canonical genre.
type Entry struct {
	Traits         domain.Traits
	CulturalWeight float64
	Complexity     float64
}

// KnowledgeBase is a read-only genre table. It is safe for concurrent use.
type KnowledgeBase struct {
	order      []string
	entries    map[string]Entry
	synonyms   map[string]string
	mainstream map[string]struct{}
	cultural   []CulturalRule
	regions    []RegionRule
}

// Tables groups the inputs of a knowledge base.
type Tables struct {
	Seeds      []Seed
	Synonyms   map[string]string
	Mainstream []string
	Cultural   []CulturalRule
	Regions    []RegionRule
}

// NewKnowledgeBase validates the tables and builds a knowledge base. The
// fallback genre must be present.
func NewKnowledgeBase(t Tables) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		order:      make([]string, 0, len(t.Seeds)),
		entries:    make(map[string]Entry, len(t.Seeds)),
		synonyms:   make(map[string]string, len(t.Synonyms)),
		mainstream: make(map[string]struct{}, len(t.Mainstream)),
		cultural:   t.Cultural,
		regions:    t.Regions,
	}

	for _, s := range t.Seeds {
		name := normalize(s.Name)
		if name == "" {
			return nil, fmt.Errorf("genre: empty genre name")
		}
		if _, dup := kb.entries[name]; dup {
			return nil, fmt.Errorf("genre: duplicate genre %q", name)
		}
		if s.CulturalWeight <= 0 || s.CulturalWeight > 1 {
			return nil, fmt.Errorf("genre: %q cultural weight %v out of (0,1]", name, s.CulturalWeight)
		}
		if s.Complexity < 0 || s.Complexity > 1 {
			return nil, fmt.Errorf("genre: %q complexity %v out of [0,1]", name, s.Complexity)
		}
		kb.order = append(kb.order, name)
		kb.entries[name] = Entry{Traits: s.Traits, CulturalWeight: s.CulturalWeight, Complexity: s.Complexity}
	}
	if _, ok := kb.entries[FallbackGenre]; !ok {
		return nil, fmt.Errorf("genre: fallback genre %q missing", FallbackGenre)
	}

	for from, to := range t.Synonyms {
		kb.synonyms[normalize(from)] = normalize(to)
	}
	for _, name := range t.Mainstream {
		kb.mainstream[normalize(name)] = struct{}{}
	}
	for _, rule := range t.Cultural {
		for _, style := range rule.Styles {
			if _, ok := kb.entries[style.Genre]; !ok {
				return nil, fmt.Errorf("genre: cultural fusion %q is not a canonical genre", style.Genre)
			}
		}
	}

	return kb, nil
}

// DefaultKnowledgeBase builds the built-in table. It panics only if the
// package-level tables are inconsistent.
func DefaultKnowledgeBase() *KnowledgeBase {
	kb, err := NewKnowledgeBase(Tables{
		Seeds:      DefaultSeeds,
		Synonyms:   DefaultSynonyms,
		Mainstream: DefaultMainstream,
		Cultural:   DefaultCulturalRules,
		Regions:    DefaultRegionRules,
	})
	if err != nil {
		panic(err)
	}
	return kb
}

// Lookup returns the entry for a canonical name.
func (kb *KnowledgeBase) Lookup(name string) (Entry, bool) {
	e, ok := kb.entries[name]
	return e, ok
}

// Fallback returns the entry used for unmatched tags.
func (kb *KnowledgeBase) Fallback() Entry {
	return kb.entries[FallbackGenre]
}

// Names returns the canonical names in table order.
func (kb *KnowledgeBase) Names() []string {
	out := make([]string, len(kb.order))
	copy(out, kb.order)
	return out
}

// Len is the number of canonical genres.
func (kb *KnowledgeBase) Len() int { return len(kb.order) }

// IsMainstream reports whether the canonical genre is on the mainstream list.
func (kb *KnowledgeBase) IsMainstream(name string) bool {
	_, ok := kb.mainstream[name]
	return ok
}

// Region returns the cultural region of a canonical genre, if any.
func (kb *KnowledgeBase) Region(name string) (string, bool) {
	for _, r := range kb.regions {
		for _, f := range r.Fragments {
			if strings.Contains(name, f) {
				return r.Region, true
			}
		}
		for _, m := range r.Members {
			if name == m {
				return r.Region, true
			}
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
