package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/analytics/personality"
	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
	"github.com/tlhtlh2211/datavis-project2/internal/worker"
)

const defaultWorkers = 4

// Orchestrator coordinates snapshot reads, feature lookups and the analytics.
type Orchestrator struct {
	store    ports.SnapshotStore
	features ports.AudioFeatureProvider
	engine   *personality.Engine
	workers  int
	log      *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWorkers bounds the number of concurrent feature batches.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger used for degraded-path warnings.
func WithLogger(log *zap.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log.Named("service")
		}
	}
}

// NewOrchestrator constructs an Orchestrator. features may be nil, in which case
// the mood analysis reports ports.ErrProviderNotConfigured and the personality
// analysis runs on genres and metadata alone.
func NewOrchestrator(store ports.SnapshotStore, features ports.AudioFeatureProvider, engine *personality.Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		features: features,
		engine:   engine,
		workers:  defaultWorkers,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// fetchFeatures splits ids into provider-sized batches and fetches them
// concurrently. Failed batches are logged and skipped; an error is returned
// only when every batch failed.
func (o *Orchestrator) fetchFeatures(ctx context.Context, ids []string) (map[string]domain.AudioFeatures, error) {
	if o.features == nil {
		return nil, ports.ErrProviderNotConfigured
	}
	found := make(map[string]domain.AudioFeatures, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	batches := worker.Chunk(ids, ports.MaxFeatureBatch)
	results := worker.FanOut(ctx, o.workers, batches, o.features.GetAudioFeatures)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			o.log.Warn("skipping audio feature batch",
				zap.Int("batch", r.Index),
				zap.Int("size", len(batches[r.Index])),
				zap.Error(r.Err))
			errs = append(errs, r.Err)
			continue
		}
		for id, f := range r.Value {
			found[id] = f
		}
	}

	if len(errs) == len(batches) {
		return nil, fmt.Errorf("service: %w: %w", ports.ErrFeaturesUnavailable, errors.Join(errs...))
	}
	return found, nil
}
