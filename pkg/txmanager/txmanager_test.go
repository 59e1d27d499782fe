package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
)

func newDB(t *testing.T) *dbmetrics.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE counters (name TEXT PRIMARY KEY, value INTEGER NOT NULL)`)
	require.NoError(t, err)

	return dbmetrics.Wrap(db, nil)
}

func count(t *testing.T, db *dbmetrics.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM counters`).Scan(&n))
	return n
}

func insert(ctx context.Context, db *dbmetrics.DB, name string) error {
	_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, `INSERT INTO counters (name, value) VALUES (?, 1)`, name)
	return err
}

func TestDoSerializable_Commit(t *testing.T) {
	db := newDB(t)
	m := NewTransactionManager(db, WithoutIsolation())

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return insert(ctx, db, "a")
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count(t, db))
}

func TestDoSerializable_RollbackOnError(t *testing.T) {
	db := newDB(t)
	m := NewTransactionManager(db, WithoutIsolation())
	boom := errors.New("boom")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		require.NoError(t, insert(ctx, db, "a"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, count(t, db))
}

func TestDo_NestedCallJoinsOuterTransaction(t *testing.T) {
	db := newDB(t)
	m := NewTransactionManager(db, WithoutIsolation())
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, m.Do(ctx, func(ctx context.Context) error {
			return insert(ctx, db, "inner")
		}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, count(t, db))
}
