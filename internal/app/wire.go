// Package app assembles the service from configuration. It is shared by the
// HTTP server and the command-line tool.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/adapters/filestore"
	"github.com/tlhtlh2211/datavis-project2/internal/adapters/objectstore"
	"github.com/tlhtlh2211/datavis-project2/internal/adapters/postgres"
	"github.com/tlhtlh2211/datavis-project2/internal/adapters/spotify"
	"github.com/tlhtlh2211/datavis-project2/internal/adapters/sqlite"
	"github.com/tlhtlh2211/datavis-project2/internal/analytics/genre"
	"github.com/tlhtlh2211/datavis-project2/internal/analytics/personality"
	"github.com/tlhtlh2211/datavis-project2/internal/config"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
	"github.com/tlhtlh2211/datavis-project2/internal/core/services"
)

// OpenStore opens the snapshot repository selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (ports.SnapshotRepository, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return filestore.New(cfg.DataDir)
	case config.DriverSQLite:
		return sqlite.NewAdapter(cfg.SQLitePath)
	case config.DriverPostgres:
		return postgres.NewAdapter(ctx, cfg.PostgresDSN)
	case config.DriverMinio:
		return objectstore.Connect(ctx, objectstore.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			Region:    cfg.Minio.Region,
		})
	default:
		return nil, fmt.Errorf("app: unknown storage driver %q", cfg.Driver)
	}
}

// NewFeatureProvider returns the Spotify client, or nil when no credentials
// are configured.
func NewFeatureProvider(ctx context.Context, cfg config.SpotifyConfig, log *zap.Logger) (ports.AudioFeatureProvider, error) {
	if !cfg.Enabled() {
		log.Warn("no Spotify credentials configured; mood analysis is disabled")
		return nil, nil
	}

	httpClient, err := spotify.NewHTTPClient(ctx, spotify.Credentials{
		AccessToken:  cfg.Token,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("app: spotify auth: %w", err)
	}

	return spotify.NewClient(httpClient, cfg.BaseURL,
		spotify.WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
		spotify.WithRateLimit(cfg.RateLimitRPS),
		spotify.WithLogger(log),
	), nil
}

// Service is a fully wired orchestrator and the store it reads from.
type Service struct {
	Orchestrator *services.Orchestrator
	Store        ports.SnapshotRepository
}

// Close releases the store.
func (s *Service) Close() error {
	return s.Store.Close()
}

// Build wires the store, the feature provider, the knowledge base and the
// personality engine into an orchestrator.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Service, error) {
	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("app: open %s store: %w", cfg.Storage.Driver, err)
	}

	provider, err := NewFeatureProvider(ctx, cfg.Spotify, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	engine := personality.New(genre.DefaultKnowledgeBase())
	orch := services.NewOrchestrator(store, provider, engine,
		services.WithWorkers(cfg.Workers),
		services.WithLogger(log),
	)
	return &Service{Orchestrator: orch, Store: store}, nil
}
