package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

// audioFeaturesWire is one entry of the audio-features response. Optional
// fields are pointers so that absent values can be defaulted.
type audioFeaturesWire struct {
	ID               string   `json:"id"`
	Valence          float64  `json:"valence"`
	Energy           float64  `json:"energy"`
	Danceability     float64  `json:"danceability"`
	Acousticness     float64  `json:"acousticness"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Tempo            float64  `json:"tempo"`
	Loudness         *float64 `json:"loudness"`
	Mode             *int     `json:"mode"`
	Speechiness      float64  `json:"speechiness"`
	TimeSignature    int      `json:"time_signature"`
	DurationMs       int      `json:"duration_ms"`
}

// audioFeaturesResponse uses pointers because the API returns null for
// tracks it has no analysis for.
type audioFeaturesResponse struct {
	AudioFeatures []*audioFeaturesWire `json:"audio_features"`
}

func (w audioFeaturesWire) toDomain() domain.AudioFeatures {
	f := domain.AudioFeatures{
		ID:               w.ID,
		Valence:          w.Valence,
		Energy:           w.Energy,
		Danceability:     w.Danceability,
		Acousticness:     w.Acousticness,
		Instrumentalness: domain.DefaultInstrumentalness,
		Tempo:            w.Tempo,
		Loudness:         domain.DefaultLoudness,
		Mode:             domain.DefaultMode,
		Speechiness:      w.Speechiness,
		TimeSignature:    w.TimeSignature,
		DurationMs:       w.DurationMs,
	}
	if w.Instrumentalness != nil {
		f.Instrumentalness = *w.Instrumentalness
	}
	if w.Loudness != nil {
		f.Loudness = *w.Loudness
	}
	if w.Mode != nil {
		f.Mode = *w.Mode
	}
	return f
}

// GetAudioFeatures fetches audio features for up to ports.MaxFeatureBatch tracks
// in a single request. Tracks without an analysis are absent from the result.
func (c *Client) GetAudioFeatures(ctx context.Context, trackIDs []string) (map[string]domain.AudioFeatures, error) {
	if len(trackIDs) == 0 {
		return make(map[string]domain.AudioFeatures), nil
	}
	if len(trackIDs) > ports.MaxFeatureBatch {
		return nil, fmt.Errorf("spotify adapter: %d ids exceeds batch limit %d: %w",
			len(trackIDs), ports.MaxFeatureBatch, domain.ErrInvalidArgument)
	}

	featuresURL, err := url.Parse(c.baseURL + "/audio-features")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid features url: %w", err)
	}
	query := featuresURL.Query()
	query.Set("ids", strings.Join(trackIDs, ","))
	featuresURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, featuresURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to create features request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: features request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: features status %d", resp.StatusCode)
	}

	var body audioFeaturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify adapter: features decode error: %w", err)
	}

	result := make(map[string]domain.AudioFeatures, len(body.AudioFeatures))
	for _, f := range body.AudioFeatures {
		if f == nil || f.ID == "" {
			continue
		}
		result[f.ID] = f.toDomain()
	}

	c.log.Debug("fetched audio features", zap.Int("requested", len(trackIDs)), zap.Int("returned", len(result)))
	return result, nil
}
