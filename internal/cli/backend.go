package cli

import (
	"context"
	"errors"
	"fmt"

	"bodycomp/internal/adapter/file"
	"bodycomp/internal/adapter/memory"
	"bodycomp/internal/adapter/postgres"
	s3store "bodycomp/internal/adapter/s3"
	"bodycomp/internal/adapter/sqlite"
	"bodycomp/internal/config"
	"bodycomp/internal/domain"
)

// Backend is the storage selected by configuration. Sessions live in memory
// unless the store is postgres.
type Backend struct {
	Blobs    domain.BlobStore
	Sessions domain.SessionRepository
	closers  []func() error
}

// OpenBackend opens the store named by cfg.Store.
func OpenBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	mem := memory.New()
	b := &Backend{Sessions: mem.NewSessionRepo()}

	switch cfg.Store {
	case config.StoreMemory:
		b.Blobs = mem
	case config.StoreFile:
		s, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		b.Blobs = s
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.Blobs = db
		b.closers = append(b.closers, db.Close)
	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		b.Blobs = db
		b.Sessions = postgres.NewSessionRepo(db)
		b.closers = append(b.closers, db.Close)
	case config.StoreS3:
		s, err := s3store.New(ctx, s3store.Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		b.Blobs = s
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	return b, nil
}

// Close releases the store.
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
