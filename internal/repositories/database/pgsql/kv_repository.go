package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
)

// PgxKVRepository backs the device-scoped key-value slots (next-journey
// marker, recent searches). Values are opaque JSON blobs replaced whole on
// every write, mirroring the client's original storage contract.
type PgxKVRepository struct {
	BaseRepository
}

// newPgxKVRepository creates a new repository for device key-value data.
func newPgxKVRepository(pool *pgxpool.Pool) portsrepo.KVRepositoryFacade {
	return &PgxKVRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.KVRepositoryFacade = (*PgxKVRepository)(nil)

// Get returns the blob stored under the key for the device.
func (r *PgxKVRepository) Get(ctx context.Context, deviceID, key string) ([]byte, error) {
	var value []byte
	err := r.Pool.QueryRow(ctx,
		`SELECT value FROM device_kv_store WHERE device_id = $1 AND key = $2;`,
		deviceID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read kv slot %s: %w", key, err)
	}
	return value, nil
}

// Put atomically replaces the whole blob under the key.
func (r *PgxKVRepository) Put(ctx context.Context, deviceID, key string, value []byte) error {
	query := `
		INSERT INTO device_kv_store (device_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (device_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, deviceID, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write kv slot %s: %w", key, err)
	}
	return nil
}

// Delete clears the slot; clearing an empty slot is a no-op.
func (r *PgxKVRepository) Delete(ctx context.Context, deviceID, key string) error {
	if _, err := r.Pool.Exec(ctx,
		`DELETE FROM device_kv_store WHERE device_id = $1 AND key = $2;`,
		deviceID, key,
	); err != nil {
		return fmt.Errorf("failed to clear kv slot %s: %w", key, err)
	}
	return nil
}
