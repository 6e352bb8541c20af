package domain

// Defaults applied when the provider omits an optional audio feature.
const (
	DefaultInstrumentalness = 0.0
	DefaultMode             = 1
	DefaultLoudness         = -10.0
)

// AudioFeatures holds the per-track analysis values reported by the catalogue.
type AudioFeatures struct {
	ID               string  `json:"id,omitempty"`
	Valence          float64 `json:"valence"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Tempo            float64 `json:"tempo"`
	Loudness         float64 `json:"loudness"`
	Mode             int     `json:"mode"`
	Speechiness      float64 `json:"speechiness"`
	TimeSignature    int     `json:"time_signature"`
	DurationMs       int     `json:"duration_ms"`
}

// FeatureSummary is the batch mean of the features used by the personality engine.
type FeatureSummary struct {
	Valence          float64 `json:"valence"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Tempo            float64 `json:"tempo"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
}
