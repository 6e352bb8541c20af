package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/analytics/mood"
	"github.com/tlhtlh2211/datavis-project2/internal/analytics/stats"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// Personality input sizes.
const (
	personalityGenres = 15
	personalityTracks = 20
	reportedGenres    = 10
)

// PersonalityReport is the personality analysis of one time range.
type PersonalityReport struct {
	TopGenres          []string                 `json:"top_genres"`
	AudioFeaturesCount int                      `json:"audio_features_count"`
	Personality        domain.PersonalityResult `json:"personality"`
}

// MoodDistribution classifies the recently played tracks of a snapshot.
// Plays without a timestamp or a track id are ignored, and tracks whose
// features could not be fetched are skipped.
func (o *Orchestrator) MoodDistribution(ctx context.Context, handle string) (domain.MoodDistribution, error) {
	// 1. Load the recent plays
	raw, err := o.lookup(ctx, handle, domain.StepRecentlyPlayed)
	if err != nil {
		return domain.MoodDistribution{}, err
	}
	plays, err := decodePage[playHistoryItem](raw)
	if err != nil {
		return domain.MoodDistribution{}, err
	}

	ids := make([]string, 0, len(plays))
	for _, p := range plays {
		if p.PlayedAt == nil || *p.PlayedAt == "" || p.Track.id() == "" {
			continue
		}
		ids = append(ids, p.Track.id())
	}

	// 2. Fetch features in provider-sized batches
	found, err := o.fetchFeatures(ctx, ids)
	if err != nil {
		return domain.MoodDistribution{}, err
	}

	// 3. Classify in play order; repeated plays count once per play
	batch := make([]domain.AudioFeatures, 0, len(ids))
	for _, id := range ids {
		if f, ok := found[id]; ok {
			batch = append(batch, f)
		}
	}
	return mood.Summarize(batch), nil
}

// PopularityScore summarises the popularity of a window's top tracks.
func (o *Orchestrator) PopularityScore(ctx context.Context, handle string, tr domain.TimeRange) (domain.PopularityStats, error) {
	tracks, err := o.topTracks(ctx, handle, tr)
	if err != nil {
		return domain.PopularityStats{}, err
	}
	pops := make([]int, len(tracks))
	for i, t := range tracks {
		pops[i] = t.popularity()
	}
	return stats.Popularity(pops), nil
}

// GenreDistribution tallies the rank-weighted genres of a window's top artists.
func (o *Orchestrator) GenreDistribution(ctx context.Context, handle string, tr domain.TimeRange, topN int) (domain.GenreDistribution, error) {
	artistGenres, err := o.artistGenres(ctx, handle, tr)
	if err != nil {
		return domain.GenreDistribution{}, err
	}
	return stats.GenreDistribution(artistGenres, topN), nil
}

// PersonalityPrediction infers a personality from a window's top artists,
// enriched with the audio features and metadata of its top tracks when those
// are available. Only a missing top-artists step is an error.
func (o *Orchestrator) PersonalityPrediction(ctx context.Context, handle string, tr domain.TimeRange) (PersonalityReport, error) {
	// 1. Weighted genres from the top artists
	artistGenres, err := o.artistGenres(ctx, handle, tr)
	if err != nil {
		return PersonalityReport{}, err
	}
	ranked := stats.RankedGenres(artistGenres)
	genres := ranked[:min(len(ranked), personalityGenres)]

	// 2. Metadata and features of the leading top tracks
	meta, features := o.trackSignals(ctx, handle, tr)

	// 3. Inference
	result := o.engine.Infer(genres, features, meta)

	names := make([]string, 0, reportedGenres)
	for _, g := range genres[:min(len(genres), reportedGenres)] {
		names = append(names, g.Name)
	}
	return PersonalityReport{
		TopGenres:          names,
		AudioFeaturesCount: len(features),
		Personality:        result,
	}, nil
}

func (o *Orchestrator) topTracks(ctx context.Context, handle string, tr domain.TimeRange) ([]trackObject, error) {
	if !tr.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	raw, err := o.lookup(ctx, handle, tr.TracksStep())
	if err != nil {
		return nil, err
	}
	return decodePage[trackObject](raw)
}

func (o *Orchestrator) artistGenres(ctx context.Context, handle string, tr domain.TimeRange) ([][]string, error) {
	if !tr.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	raw, err := o.lookup(ctx, handle, tr.ArtistsStep())
	if err != nil {
		return nil, err
	}
	artists, err := decodePage[artistObject](raw)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(artists))
	for i, a := range artists {
		out[i] = a.Genres
	}
	return out, nil
}

// trackSignals never fails: a missing or unreadable top-tracks step, or an
// unavailable feature provider, leaves the corresponding input empty.
func (o *Orchestrator) trackSignals(ctx context.Context, handle string, tr domain.TimeRange) ([]domain.TrackPopularityRecord, []domain.AudioFeatures) {
	tracks, err := o.topTracks(ctx, handle, tr)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			o.log.Warn("ignoring unreadable top tracks", zap.String("handle", handle), zap.Error(err))
		}
		return nil, nil
	}

	var meta []domain.TrackPopularityRecord
	var ids []string
	for _, t := range tracks[:min(len(tracks), personalityTracks)] {
		id := t.id()
		if id == "" {
			continue
		}
		rec := domain.TrackPopularityRecord{
			ID:          id,
			Popularity:  t.popularity(),
			Explicit:    t.Explicit,
			ReleaseDate: t.Album.ReleaseDate,
		}
		if t.DurationMs != nil {
			rec.DurationMs = *t.DurationMs
		}
		if len(t.Artists) > 0 && t.Artists[0].Followers != nil {
			rec.ArtistFollowers = t.Artists[0].Followers.Total
		}
		meta = append(meta, rec)
		ids = append(ids, id)
	}

	if o.features == nil {
		return meta, nil
	}
	found, err := o.fetchFeatures(ctx, ids)
	if err != nil {
		o.log.Warn("personality without audio features", zap.String("handle", handle), zap.Error(err))
		return meta, nil
	}
	var features []domain.AudioFeatures
	for _, id := range ids {
		if f, ok := found[id]; ok {
			features = append(features, f)
		}
	}
	return meta, features
}
