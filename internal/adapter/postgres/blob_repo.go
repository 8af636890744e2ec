package postgres

import (
	"context"
	"database/sql"
	"time"

	"bodycomp/internal/domain"
)

var _ domain.BlobStore = (*DB)(nil)

// GetBlob returns the payload stored under key, or nil if there is none.
func (d *DB) GetBlob(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := d.sql.QueryRowContext(ctx, "SELECT payload FROM blobs WHERE key = $1", key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// PutBlob upserts the payload for key.
func (d *DB) PutBlob(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO blobs (key, payload, updated_at) VALUES ($1, $2, $3) ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at",
		key, data, time.Now().UTC(),
	)
	return err
}
