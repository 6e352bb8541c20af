// Package objectstore stores snapshot files as objects in an S3-compatible bucket,
// one object per handle.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

var _ ports.SnapshotRepository = (*Store)(nil)

// Config holds the connection settings of the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

// Store reads snapshot objects from a bucket. Appends rewrite the whole object
// and are serialised within one process only.
type Store struct {
	client *minio.Client
	bucket string
	mu     sync.Mutex
}

// New wraps an existing client.
func New(client *minio.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Connect creates a client for cfg and makes sure the bucket exists.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: connect %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("minio: create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return New(client, cfg.Bucket), nil
}

// Close is a no-op; the client holds no long-lived resources.
func (s *Store) Close() error { return nil }

func (s *Store) load(ctx context.Context, handle string) (domain.Snapshot, error) {
	if handle == "" {
		return nil, fmt.Errorf("minio: empty handle: %w", domain.ErrNotFound)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, handle, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(handle, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.translate(handle, err)
	}
	return domain.DecodeSnapshot(data)
}

func (s *Store) translate(handle string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("minio: %s: %w", handle, domain.ErrNotFound)
	}
	return fmt.Errorf("minio: get %s: %w", handle, err)
}

// Lookup returns the data of the first entry of handle with the given step.
func (s *Store) Lookup(ctx context.Context, handle, step string) (json.RawMessage, error) {
	snap, err := s.load(ctx, handle)
	if err != nil {
		return nil, err
	}
	raw, ok := snap.Lookup(step)
	if !ok {
		return nil, fmt.Errorf("minio: %s has no %s: %w", handle, step, domain.ErrNotFound)
	}
	return raw, nil
}

// Append adds entry to the end of the handle's object, creating it if needed.
func (s *Store) Append(ctx context.Context, handle string, entry domain.SnapshotEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if handle == "" {
		return fmt.Errorf("minio: empty handle: %w", domain.ErrInvalidArgument)
	}
	snap, err := s.load(ctx, handle)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if len(entry.Data) == 0 {
		entry.Data = json.RawMessage("null")
	}
	snap = append(snap, entry)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("minio: encode %s: %w", handle, err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, handle, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("minio: put %s: %w", handle, err)
	}
	return nil
}
