package app

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/config"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		cfg       config.StorageConfig
		expectErr bool
	}{
		{name: "file", cfg: config.StorageConfig{Driver: config.DriverFile, DataDir: filepath.Join(dir, "files")}},
		{name: "sqlite", cfg: config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "snap.db")}},
		{name: "unknown", cfg: config.StorageConfig{Driver: "redis"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := OpenStore(context.Background(), tt.cfg)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			require.NoError(t, store.Append(ctx, "u.json", domain.SnapshotEntry{Step: domain.StepCurrentUser, Data: json.RawMessage(`{"id":"u"}`)}))
			raw, err := store.Lookup(ctx, "u.json", domain.StepCurrentUser)
			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"u"}`, string(raw))
		})
	}
}

func TestNewFeatureProvider(t *testing.T) {
	provider, err := NewFeatureProvider(context.Background(), config.SpotifyConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, provider)

	provider, err = NewFeatureProvider(context.Background(), config.SpotifyConfig{
		Token: "t", BaseURL: "http://127.0.0.1:0", MaxRetries: 1, RetryBackoff: time.Millisecond, Timeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, provider)
}

func TestBuild_WithoutProvider(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Environment: "development", LogLevel: "info"},
		Storage: config.StorageConfig{Driver: config.DriverFile, DataDir: t.TempDir()},
		Spotify: config.SpotifyConfig{MaxRetries: 1},
		Workers: 2,
	}
	svc, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	require.NoError(t, svc.Store.Append(ctx, "u.json", domain.SnapshotEntry{
		Step: domain.StepRecentlyPlayed,
		Data: json.RawMessage(`{"items":[{"played_at":"2024-01-01T00:00:00Z","track":{"id":"t1"}}]}`),
	}))

	_, err = svc.Orchestrator.MoodDistribution(ctx, "u.json")
	assert.True(t, errors.Is(err, ports.ErrProviderNotConfigured), "got %v", err)
}
