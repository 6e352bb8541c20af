package domain

// TrackPopularityRecord is the per-track metadata derived from a top-tracks snapshot.
type TrackPopularityRecord struct {
	ID              string `json:"id"`
	Popularity      int    `json:"popularity"`
	DurationMs      int    `json:"duration_ms"`
	Explicit        bool   `json:"explicit"`
	ReleaseDate     string `json:"release_date"`
	ArtistFollowers int    `json:"artist_followers"`
}

// WeightedGenre is a genre tag with its occurrence weight. Slice order is rank.
type WeightedGenre struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}
