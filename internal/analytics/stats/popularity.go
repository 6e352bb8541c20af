// Package stats aggregates popularity and genre tallies over ranked lists.
package stats

import "github.com/tlhtlh2211/datavis-project2/internal/core/domain"

// RankWeight is the linear decay 1 - rank/n. Rank 0 weighs 1.
func RankWeight(rank, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 - float64(rank)/float64(n)
}

// Popularity summarises popularity values given in rank order. The weighted
// average is normalised by the sum of rank weights, so it exceeds the simple
// mean whenever popularity decreases with rank. Empty input yields zeros.
func Popularity(pops []int) domain.PopularityStats {
	n := len(pops)
	if n == 0 {
		return domain.PopularityStats{}
	}

	out := domain.PopularityStats{MinPopularity: pops[0], MaxPopularity: pops[0], TrackCount: n}
	var sum, weighted, weights float64
	for i, p := range pops {
		w := RankWeight(i, n)
		sum += float64(p)
		weighted += float64(p) * w
		weights += w
		out.MinPopularity = min(out.MinPopularity, p)
		out.MaxPopularity = max(out.MaxPopularity, p)
	}

	out.AveragePopularity = domain.RoundTo(sum/float64(n), 2)
	if weights > 0 {
		out.WeightedAverage = domain.RoundTo(weighted/weights, 2)
	}
	return out
}
