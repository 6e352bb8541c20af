// Package postgres provides a PostgreSQL-backed implementation of the snapshot repository port.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

var _ ports.SnapshotRepository = (*Adapter)(nil)

// Adapter stores snapshot entries in a snapshot_entries table.
type Adapter struct {
	db *sql.DB
}

// NewAdapter connects to dsn and ensures the schema exists.
func NewAdapter(ctx context.Context, dsn string) (*Adapter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres db: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return a, nil
}

// Close releases the connection pool.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Lookup returns the data of the first entry of handle with the given step.
func (a *Adapter) Lookup(ctx context.Context, handle, step string) (json.RawMessage, error) {
	var data []byte
	query := "SELECT data FROM snapshot_entries WHERE handle = $1 AND step = $2 ORDER BY seq ASC LIMIT 1"
	if err := a.db.QueryRowContext(ctx, query, handle, step).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot entry: %w", err)
	}

	raw, ok := domain.Snapshot{{Step: step, Data: data}}.Lookup(step)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

// Append stores entry after the existing entries of handle. Concurrent appends
// to the same handle are serialised by a transaction-scoped advisory lock.
func (a *Adapter) Append(ctx context.Context, handle string, entry domain.SnapshotEntry) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", handle); err != nil {
		return fmt.Errorf("failed to lock handle: %w", err)
	}

	data := entry.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	query := `
		INSERT INTO snapshot_entries (handle, seq, step, data)
		SELECT $1, COALESCE(MAX(seq), -1) + 1, $2, $3::jsonb
		FROM snapshot_entries WHERE handle = $1`
	if _, err := tx.ExecContext(ctx, query, handle, entry.Step, string(data)); err != nil {
		return fmt.Errorf("failed to insert snapshot entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot entry: %w", err)
	}
	return nil
}

func (a *Adapter) migrate(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS snapshot_entries (
		handle TEXT NOT NULL,
		seq INTEGER NOT NULL,
		step TEXT NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (handle, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_snapshot_entries_step ON snapshot_entries (handle, step, seq);
	`)
	return err
}
