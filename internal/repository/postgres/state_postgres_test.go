package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"docverify/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*StatePostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStatePostgres(db), mock
}

func TestStatePostgres_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("SELECT value, version FROM app_state WHERE key = ?").
			WithArgs("uploadedDocuments").
			WillReturnRows(sqlmock.NewRows([]string{"value", "version"}).AddRow([]byte(`{"items":[]}`), 3))

		snap, err := repo.Load(ctx, "uploadedDocuments")

		require.NoError(t, err)
		assert.Equal(t, int64(3), snap.Version)
		assert.JSONEq(t, `{"items":[]}`, string(snap.Data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("SELECT value, version FROM app_state").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Load(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tombstone", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("SELECT value, version FROM app_state").
			WithArgs("uploadedDocuments").
			WillReturnRows(sqlmock.NewRows([]string{"value", "version"}).AddRow(nil, 4))

		snap, err := repo.Load(ctx, "uploadedDocuments")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Equal(t, int64(4), snap.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("SELECT value, version FROM app_state").
			WithArgs("k").
			WillReturnError(errors.New("db down"))

		_, err := repo.Load(ctx, "k")

		assert.EqualError(t, err, "db down")
	})
}

func TestStatePostgres_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("insert when absent", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO app_state (.+) ON CONFLICT \\(key\\) DO NOTHING").
			WithArgs("k", `[]`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

		v, err := repo.Save(ctx, "k", []byte(`[]`), 0)

		require.NoError(t, err)
		assert.Equal(t, int64(1), v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert conflict", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO app_state (.+) DO NOTHING").
			WithArgs("k", `[]`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		_, err := repo.Save(ctx, "k", []byte(`[]`), 0)

		assert.ErrorIs(t, err, repository.ErrVersionConflict)
	})

	t.Run("compare and set", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("UPDATE app_state SET (.+) WHERE key = \\$1 AND version = \\$3").
			WithArgs("k", `[1]`, int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))

		v, err := repo.Save(ctx, "k", []byte(`[1]`), 4)

		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("compare and set conflict", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("UPDATE app_state").
			WithArgs("k", `[1]`, int64(4)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Save(ctx, "k", []byte(`[1]`), 4)

		assert.ErrorIs(t, err, repository.ErrVersionConflict)
	})

	t.Run("unconditional upsert", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO app_state (.+) DO UPDATE").
			WithArgs("k", `true`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(9))

		v, err := repo.Save(ctx, "k", []byte(`true`), repository.AnyVersion)

		require.NoError(t, err)
		assert.Equal(t, int64(9), v)
	})
}

func TestStatePostgres_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE app_state SET value = NULL, version = version \+ 1, updated_at = now\(\) WHERE key = \$1 AND value IS NOT NULL`).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "k")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatePostgres_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("unreachable"))

	err = NewStatePostgres(db).Ping(context.Background())
	assert.EqualError(t, err, "unreachable")
}
