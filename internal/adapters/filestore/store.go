// Package filestore reads and writes snapshot files in a data directory, one
// JSON array per handle.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

var _ ports.SnapshotRepository = (*Store)(nil)

// Store resolves handles as file names relative to its directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) path(handle string) (string, error) {
	if handle == "" || !filepath.IsLocal(handle) {
		return "", fmt.Errorf("filestore: handle %q outside data dir: %w", handle, domain.ErrNotFound)
	}
	return filepath.Join(s.dir, handle), nil
}

func (s *Store) load(handle string) (domain.Snapshot, error) {
	p, err := s.path(handle)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("filestore: %s: %w", handle, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("filestore: read %s: %w", handle, err)
	}
	return domain.DecodeSnapshot(data)
}

// Lookup returns the data of the first entry of handle with the given step.
func (s *Store) Lookup(_ context.Context, handle, step string) (json.RawMessage, error) {
	snap, err := s.load(handle)
	if err != nil {
		return nil, err
	}
	raw, ok := snap.Lookup(step)
	if !ok {
		return nil, fmt.Errorf("filestore: %s has no %s: %w", handle, step, domain.ErrNotFound)
	}
	return raw, nil
}

// Append adds entry to the end of the handle's file, creating it if needed.
// The file is replaced atomically.
func (s *Store) Append(_ context.Context, handle string, entry domain.SnapshotEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(handle)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	p, err := s.path(handle)
	if err != nil {
		return err
	}
	if len(entry.Data) == 0 {
		entry.Data = json.RawMessage("null")
	}
	snap = append(snap, entry)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("filestore: encode %s: %w", handle, err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("filestore: create dir for %s: %w", handle, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("filestore: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write %s: %w", handle, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close %s: %w", handle, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("filestore: replace %s: %w", handle, err)
	}
	return nil
}
