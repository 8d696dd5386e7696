package postgres

import (
	"context"
	"database/sql"
	"errors"

	"docverify/internal/repository"
)

// StatePostgres is a PostgreSQL implementation of repository.StateRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Version checks are done inside single statements so concurrent writers from
// other processes cannot silently overwrite each other.
type StatePostgres struct {
	db *sql.DB
}

// NewStatePostgres creates a new StatePostgres repository.
func NewStatePostgres(db *sql.DB) *StatePostgres {
	return &StatePostgres{db: db}
}

var _ repository.StateRepository = (*StatePostgres)(nil)

// Load fetches the value and version stored under key.
func (r *StatePostgres) Load(ctx context.Context, key string) (repository.Snapshot, error) {
	const q = `
		SELECT value, version
		FROM app_state
		WHERE key = $1
	`
	var (
		data    []byte
		version int64
	)
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&data, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.Snapshot{}, repository.ErrNotFound
		}
		return repository.Snapshot{}, err
	}
	// A NULL value is a tombstone left by Delete.
	if data == nil {
		return repository.Snapshot{Version: version}, repository.ErrNotFound
	}
	return repository.Snapshot{Data: data, Version: version}, nil
}

// Save writes value under key with a compare-and-set on the version column.
func (r *StatePostgres) Save(ctx context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	const (
		qUpsert = `
		INSERT INTO app_state (key, value, version, updated_at)
		VALUES ($1, $2::jsonb, 1, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, version = app_state.version + 1, updated_at = now()
		RETURNING version
	`
		qInsert = `
		INSERT INTO app_state (key, value, version, updated_at)
		VALUES ($1, $2::jsonb, 1, now())
		ON CONFLICT (key) DO NOTHING
		RETURNING version
	`
		qUpdate = `
		UPDATE app_state
		SET value = $2::jsonb, version = version + 1, updated_at = now()
		WHERE key = $1 AND version = $3
		RETURNING version
	`
	)

	var row *sql.Row
	switch {
	case expectedVersion == repository.AnyVersion:
		row = r.db.QueryRowContext(ctx, qUpsert, key, string(data))
	case expectedVersion == 0:
		row = r.db.QueryRowContext(ctx, qInsert, key, string(data))
	default:
		row = r.db.QueryRowContext(ctx, qUpdate, key, string(data), expectedVersion)
	}

	var version int64
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrVersionConflict
		}
		return 0, err
	}
	return version, nil
}

// Delete clears the value but keeps the row, advancing its version. It does
// not return an error if the row does not exist.
func (r *StatePostgres) Delete(ctx context.Context, key string) error {
	const q = `
		UPDATE app_state
		SET value = NULL, version = version + 1, updated_at = now()
		WHERE key = $1 AND value IS NOT NULL
	`
	_, err := r.db.ExecContext(ctx, q, key)
	return err
}

// Ping checks database connectivity.
func (r *StatePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
