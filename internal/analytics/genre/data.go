package genre

import "github.com/tlhtlh2211/datavis-project2/internal/core/domain"

// FallbackGenre is the entry used for tags that match nothing.
const FallbackGenre = "unknown"

// Seed defines one canonical genre.
type Seed struct {
	Name           string
	Traits         domain.Traits
	CulturalWeight float64
	Complexity     float64
}

func seed(name string, o, c, e, a, s, cultural, complexity float64) Seed {
	return Seed{Name: name, Traits: domain.NewTraits(o, c, e, a, s), CulturalWeight: cultural, Complexity: complexity}
}

// DefaultSeeds is the built-in genre table. Order matters: partial matching
// keeps the first of equally scored candidates.
var DefaultSeeds = []Seed{
	// Western pop
	seed("pop", 45, 55, 75, 65, 60, 1.0, 0.3),
	seed("dance pop", 50, 45, 80, 60, 65, 1.0, 0.4),
	seed("indie pop", 65, 50, 60, 70, 50, 0.8, 0.6),
	seed("synth pop", 60, 55, 65, 60, 55, 0.9, 0.5),
	seed("dream pop", 70, 45, 40, 75, 45, 0.7, 0.7),
	seed("art pop", 80, 50, 50, 65, 50, 0.6, 0.8),
	seed("hyperpop", 85, 35, 70, 55, 45, 0.5, 0.9),

	// Rock and alternative
	seed("rock", 60, 50, 60, 50, 55, 1.0, 0.5),
	seed("alternative rock", 70, 45, 55, 60, 50, 0.8, 0.6),
	seed("indie rock", 75, 45, 50, 65, 45, 0.7, 0.7),
	seed("classic rock", 55, 60, 55, 50, 60, 1.0, 0.4),
	seed("hard rock", 60, 45, 70, 40, 60, 0.9, 0.5),
	seed("punk", 70, 30, 65, 40, 50, 0.8, 0.6),
	seed("metal", 65, 55, 60, 40, 55, 0.8, 0.6),
	seed("progressive rock", 80, 70, 50, 55, 60, 0.7, 0.9),
	seed("post-rock", 85, 60, 35, 70, 65, 0.6, 0.8),

	// Electronic
	seed("electronic", 65, 55, 70, 50, 60, 0.9, 0.6),
	seed("edm", 60, 50, 80, 55, 65, 1.0, 0.4),
	seed("house", 60, 55, 75, 60, 65, 0.9, 0.5),
	seed("techno", 65, 60, 70, 45, 60, 0.8, 0.6),
	seed("dubstep", 70, 45, 75, 40, 55, 0.8, 0.7),
	seed("ambient", 80, 60, 30, 65, 70, 0.6, 0.8),
	seed("downtempo", 75, 55, 35, 70, 75, 0.7, 0.7),
	seed("drum and bass", 70, 50, 75, 45, 60, 0.8, 0.7),
	seed("trance", 65, 55, 65, 55, 70, 0.8, 0.6),

	// Hip hop and R&B
	seed("hip hop", 60, 45, 70, 50, 60, 1.0, 0.5),
	seed("rap", 65, 40, 75, 45, 60, 1.0, 0.4),
	seed("trap", 55, 35, 70, 40, 50, 0.9, 0.4),
	seed("r&b", 55, 50, 65, 70, 55, 1.0, 0.5),
	seed("neo soul", 70, 55, 55, 75, 60, 0.8, 0.7),
	seed("conscious hip hop", 75, 60, 60, 70, 65, 0.7, 0.8),

	// Jazz and classical
	seed("jazz", 75, 65, 50, 60, 65, 0.8, 0.8),
	seed("classical", 70, 75, 40, 65, 70, 0.7, 0.9),
	seed("neo-classical", 75, 70, 45, 65, 65, 0.6, 0.8),
	seed("contemporary jazz", 80, 60, 55, 65, 70, 0.7, 0.8),
	seed("bebop", 85, 70, 50, 60, 65, 0.6, 0.9),

	// Folk and acoustic
	seed("folk", 65, 60, 40, 75, 60, 0.8, 0.6),
	seed("country", 45, 65, 60, 70, 65, 1.0, 0.4),
	seed("singer-songwriter", 70, 55, 45, 75, 50, 0.8, 0.7),
	seed("acoustic", 60, 55, 40, 70, 65, 0.8, 0.5),
	seed("indie folk", 75, 50, 45, 80, 55, 0.7, 0.7),

	// World
	seed("k-pop", 50, 60, 75, 65, 55, 0.9, 0.5),
	seed("j-pop", 55, 65, 70, 70, 60, 0.9, 0.5),
	seed("v-pop", 52, 58, 72, 68, 58, 0.9, 0.5),
	seed("latin", 60, 50, 80, 70, 65, 0.9, 0.6),
	seed("reggae", 60, 40, 65, 75, 70, 0.8, 0.6),
	seed("afrobeat", 65, 50, 75, 65, 60, 0.8, 0.7),
	seed("bollywood", 55, 55, 80, 70, 60, 0.9, 0.6),
	seed("bossa nova", 70, 60, 50, 80, 75, 0.7, 0.7),

	// Regional
	seed("vietnam indie", 72, 52, 58, 75, 55, 0.8, 0.7),
	seed("vietnamese hip hop", 62, 45, 68, 58, 60, 0.8, 0.6),
	seed("vietnamese lo-fi", 78, 50, 35, 80, 70, 0.7, 0.8),
	seed("vinahouse", 58, 45, 78, 60, 65, 0.9, 0.5),
	seed("soft pop", 60, 60, 55, 75, 65, 0.8, 0.4),

	// Experimental and niche
	seed("experimental", 90, 45, 40, 50, 45, 0.4, 0.95),
	seed("noise", 85, 30, 50, 35, 40, 0.3, 0.9),
	seed("shoegaze", 75, 40, 35, 65, 45, 0.5, 0.8),
	seed("post-punk", 80, 45, 55, 50, 50, 0.6, 0.8),
	seed("lo-fi", 70, 45, 30, 75, 65, 0.7, 0.7),

	seed(FallbackGenre, 50, 50, 50, 50, 50, 1.0, 0.5),
}

// DefaultSynonyms maps common spellings to canonical names. The vietnam and
// vietnamese entries point at each other and at no canonical genre; the matcher
// ignores such entries.
var DefaultSynonyms = map[string]string{
	"hiphop":            "hip hop",
	"rnb":               "r&b",
	"jpop":              "j-pop",
	"kpop":              "k-pop",
	"vpop":              "v-pop",
	"edm":               "electronic",
	"dnb":               "drum and bass",
	"dub":               "dubstep",
	"indie":             "indie rock",
	"alternative":       "alternative rock",
	"singer songwriter": "singer-songwriter",
	"vietnam":           "vietnamese",
	"vietnamese":        "vietnam",
}

// DefaultMainstream lists the genres treated as mainstream when computing the
// niche ratio of a listener's top genres.
var DefaultMainstream = []string{
	"pop", "dance pop", "rock", "classic rock", "hip hop", "rap", "trap", "r&b",
	"edm", "electronic", "house", "country", "latin", "k-pop", "j-pop", "v-pop",
}

// CulturalRule maps a region marker plus a style token to a fusion genre.
type CulturalRule struct {
	Markers []string
	Styles  []StyleFusion
}

// StyleFusion is one style token set and the genre it resolves to.
type StyleFusion struct {
	Tokens []string
	Genre  string
}

// DefaultCulturalRules are checked before partial matching. Styles are tried in order.
var DefaultCulturalRules = []CulturalRule{
	{
		Markers: []string{"vietnam", "viet"},
		Styles: []StyleFusion{
			{Tokens: []string{"indie"}, Genre: "vietnam indie"},
			{Tokens: []string{"hip hop", "rap"}, Genre: "vietnamese hip hop"},
			{Tokens: []string{"lo-fi", "lofi"}, Genre: "vietnamese lo-fi"},
		},
	},
}

// RegionRule tags a canonical genre with a cultural region.
type RegionRule struct {
	Region    string
	Fragments []string // substring of the canonical name
	Members   []string // exact canonical names
}

// DefaultRegionRules are evaluated in order; the first match wins.
var DefaultRegionRules = []RegionRule{
	{Region: "korean", Fragments: []string{"k-", "korean"}},
	{Region: "japanese", Fragments: []string{"j-", "japanese"}},
	{Region: "vietnamese", Fragments: []string{"vietnam", "v-"}},
	{Region: "latin", Fragments: []string{"latin", "spanish"}},
	{Region: "western", Members: []string{"folk", "country", "blues", "rock", "pop"}},
	{Region: "african", Members: []string{"afrobeat", "reggae"}},
}

// RegionCount is the number of cultural regions used to normalise diversity.
const RegionCount = 6
