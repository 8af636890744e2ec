// Package sqlite stores blobs in a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bodycomp/internal/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DB implements domain.BlobStore on a bucket/payload table.
type DB struct {
	sql  *sql.DB
	path string
}

var _ domain.BlobStore = (*DB)(nil)

// Open opens (creating if needed) the database at path and ensures the state
// table exists.
func Open(path string) (*DB, error) {
	if path == "" {
		path = "bodycomp.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s.SetMaxOpenConns(1)
	if _, err := s.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &DB{sql: s, path: path}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error { return d.sql.Close() }

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// GetBlob returns the payload stored in bucket key, or nil if there is none.
func (d *DB) GetBlob(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := d.sql.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return payload, nil
}

// PutBlob upserts the payload for bucket key.
func (d *DB) PutBlob(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
