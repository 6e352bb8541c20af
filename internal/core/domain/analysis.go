package domain

// MoodDistribution counts mood labels over a set of tracks.
type MoodDistribution struct {
	Labels      []string           `json:"labels"`
	Counts      []int              `json:"counts"`
	Percentages map[string]float64 `json:"percentages"`
	TotalTracks int                `json:"total_tracks"`
}

// PopularityStats summarises track popularity over a ranked list.
type PopularityStats struct {
	AveragePopularity float64 `json:"average_popularity"`
	WeightedAverage   float64 `json:"weighted_average"`
	MinPopularity     int     `json:"min_popularity"`
	MaxPopularity     int     `json:"max_popularity"`
	TrackCount        int     `json:"track_count"`
}

// GenreDistribution is the top-N genre tally over a ranked artist list.
type GenreDistribution struct {
	Labels             []string           `json:"labels"`
	Counts             []int              `json:"counts"`
	Percentages        map[string]float64 `json:"percentages"`
	TotalGenreMentions int                `json:"total_genre_mentions"`
	UniqueGenreCount   int                `json:"unique_genre_count"`
}

// PersonalityResult is the output of the personality engine.
type PersonalityResult struct {
	Scores          Traits            `json:"scores"`
	Descriptions    map[string]string `json:"descriptions"`
	PersonalityType string            `json:"personality_type"`
	Confidence      float64           `json:"confidence"`
	Metadata        AnalysisMetadata  `json:"analysis_metadata"`
}

// AnalysisMetadata explains how a PersonalityResult was derived.
type AnalysisMetadata struct {
	GenreDiversity        float64         `json:"genre_diversity"`
	CulturalDiversity     float64         `json:"cultural_diversity"`
	ComplexityScore       float64         `json:"complexity_score"`
	CulturalRegions       []string        `json:"cultural_regions"`
	MatchedGenres         []string        `json:"matched_genres"`
	TotalGenresAnalyzed   int             `json:"total_genres_analyzed"`
	AudioFeaturesAnalyzed int             `json:"audio_features_analyzed"`
	AudioFeaturesWeight   float64         `json:"audio_features_weight"`
	AudioFeaturesSummary  *FeatureSummary `json:"audio_features_summary"`
}
