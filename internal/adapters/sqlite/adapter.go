// Package sqlite provides a SQLite-backed implementation of the snapshot repository port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

var _ ports.SnapshotRepository = (*Adapter)(nil)

// Adapter implements the snapshot repository port for SQLite
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises appends.
	db.SetMaxOpenConns(1)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Lookup returns the data of the first entry of handle with the given step.
func (a *Adapter) Lookup(ctx context.Context, handle, step string) (json.RawMessage, error) {
	var data []byte
	row := a.db.QueryRowContext(ctx, `
		SELECT data FROM snapshot_entries
		WHERE handle = ? AND step = ?
		ORDER BY seq ASC
		LIMIT 1
	`, handle, step)
	if err := row.Scan(&data); err != nil {
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

// Append stores entry after the existing entries of handle.
func (a *Adapter) Append(ctx context.Context, handle string, entry domain.SnapshotEntry) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), -1) + 1 FROM snapshot_entries WHERE handle = ?", handle,
	).Scan(&seq); err != nil {
		return fmt.Errorf("failed to allocate sequence: %w", err)
	}

	data := entry.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshot_entries (handle, seq, step, data) VALUES (?, ?, ?, ?)",
		handle, seq, entry.Step, []byte(data),
	); err != nil {
		return fmt.Errorf("failed to insert snapshot entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot entry: %w", err)
	}
	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshot_entries (
		handle TEXT NOT NULL,
		seq INTEGER NOT NULL,
		step TEXT NOT NULL,
		data BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (handle, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshot_entries_step ON snapshot_entries (handle, step, seq);
	`
	_, err := a.db.Exec(query)
	return err
}
