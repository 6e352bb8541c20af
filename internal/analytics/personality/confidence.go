package personality

import "github.com/tlhtlh2211/datavis-project2/internal/core/domain"

// neutralFactor stands in for a confidence factor that cannot be measured.
const neutralFactor = 0.5

// confidence blends match quality, genre count, weight spread and audio
// coverage into a 0-100 score rounded to one decimal.
func confidence(genres []domain.WeightedGenre, matchConfidences []float64, audioTracks int) float64 {
	avgMatch := neutralFactor
	if len(matchConfidences) > 0 {
		avgMatch = mean(matchConfidences)
	}

	dataQuality := min(float64(len(genres))/10, 1)

	weightSpread := neutralFactor
	if peak := peakWeight(genres); peak > 0 {
		var total float64
		for _, g := range genres {
			if usableWeight(g.Weight) {
				total += g.Weight / peak
			}
		}
		weightSpread = 1 - 1/total
	}

	var audioBonus float64
	if audioTracks > 0 {
		audioBonus = min(float64(audioTracks)/audioSaturation, 1) * 0.2
	}

	c := (avgMatch*0.3 + dataQuality*0.25 + weightSpread*0.25 + audioBonus*0.2) * 100
	return domain.RoundTo(domain.ClampTo(c, MinScore, MaxScore), 1)
}
