package stats

import (
	"math"
	"slices"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// DefaultTopN is the number of genres reported when no limit is given.
const DefaultTopN = 10

// Multiplier is the repeat count of an artist's genres at the given rank:
// max(1, floor(RankWeight*5)).
func Multiplier(rank, n int) int {
	return max(1, int(math.Floor(RankWeight(rank, n)*5)))
}

type tally struct {
	order  []string
	counts map[string]int
	total  int
}

func countGenres(artistGenres [][]string) tally {
	t := tally{counts: make(map[string]int)}
	n := len(artistGenres)
	for rank, genres := range artistGenres {
		m := Multiplier(rank, n)
		for _, g := range genres {
			if _, seen := t.counts[g]; !seen {
				t.order = append(t.order, g)
			}
			t.counts[g] += m
			t.total += m
		}
	}
	return t
}

// ranked returns the genres by descending count; ties keep first appearance.
func (t tally) ranked() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	slices.SortStableFunc(out, func(a, b string) int { return t.counts[b] - t.counts[a] })
	return out
}

// RankedGenres tallies the genres of a ranked artist list and returns them as
// weighted genres, most frequent first.
func RankedGenres(artistGenres [][]string) []domain.WeightedGenre {
	t := countGenres(artistGenres)
	names := t.ranked()
	out := make([]domain.WeightedGenre, len(names))
	for i, name := range names {
		out[i] = domain.WeightedGenre{Name: name, Weight: float64(t.counts[name])}
	}
	return out
}

// GenreDistribution reports the topN genres of a ranked artist list.
// Percentages are relative to the reported genres; the mention and unique
// counts cover the whole tally.
func GenreDistribution(artistGenres [][]string, topN int) domain.GenreDistribution {
	if topN < 1 {
		topN = DefaultTopN
	}
	t := countGenres(artistGenres)
	names := t.ranked()
	if len(names) > topN {
		names = names[:topN]
	}

	dist := domain.GenreDistribution{
		Labels:             names,
		Counts:             make([]int, len(names)),
		Percentages:        make(map[string]float64, len(names)),
		TotalGenreMentions: t.total,
		UniqueGenreCount:   len(t.counts),
	}
	shown := 0
	for i, name := range names {
		dist.Counts[i] = t.counts[name]
		shown += t.counts[name]
	}
	for i, name := range names {
		dist.Percentages[name] = domain.RoundTo(float64(dist.Counts[i])/float64(shown)*100, 2)
	}
	return dist
}
