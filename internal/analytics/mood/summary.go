package mood

import "github.com/tlhtlh2211/datavis-project2/internal/core/domain"

// Summarize classifies every feature set and counts the labels. Labels are
// reported in the order they are first seen; percentages are rounded to two
// decimals.
func Summarize(batch []domain.AudioFeatures) domain.MoodDistribution {
	counts := make(map[string]int)
	var order []string
	for _, f := range batch {
		label := Classify(f)
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	dist := domain.MoodDistribution{
		Labels:      make([]string, 0, len(order)),
		Counts:      make([]int, 0, len(order)),
		Percentages: make(map[string]float64, len(order)),
		TotalTracks: len(batch),
	}
	for _, label := range order {
		n := counts[label]
		dist.Labels = append(dist.Labels, label)
		dist.Counts = append(dist.Counts, n)
		dist.Percentages[label] = domain.RoundTo(float64(n)/float64(len(batch))*100, 2)
	}
	return dist
}
