package ports

import (
	"context"
	"errors"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
)

// MaxFeatureBatch is the largest number of track IDs accepted per provider call.
const MaxFeatureBatch = 50

var (
	// ErrFeaturesUnavailable is returned when no feature batch could be fetched.
	ErrFeaturesUnavailable = errors.New("audio features unavailable")
	// ErrProviderNotConfigured is returned when no feature provider was wired.
	ErrProviderNotConfigured = errors.New("audio feature provider not configured")
)

// AudioFeatureProvider looks up audio features for up to MaxFeatureBatch tracks.
// Tracks the provider has no features for are absent from the returned map.
type AudioFeatureProvider interface {
	GetAudioFeatures(ctx context.Context, trackIDs []string) (map[string]domain.AudioFeatures, error)
}
