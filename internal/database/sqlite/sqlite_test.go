package sqlite

import (
	"context"
	"errors"
	"testing"

	"staffmatch/internal/database"

	"github.com/stretchr/testify/require"
)

func TestOpenMemoryExecAndQuery(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Equal(t, database.DialectSQLite, db.Dialect())

	_, err = db.Exec(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER NOT NULL)`)
	require.NoError(t, err)

	n, err := db.Exec(ctx, `INSERT INTO kv (k, v) VALUES ($1, $2), ($3, $4) ON CONFLICT (k) DO NOTHING`, "a", 1, "b", 2)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = db.Exec(ctx, `INSERT INTO kv (k, v) VALUES ($1, $2) ON CONFLICT (k) DO NOTHING`, "a", 9)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	var v int64
	require.NoError(t, db.QueryRow(ctx, `SELECT v FROM kv WHERE k = $1`, "b").Scan(&v))
	require.EqualValues(t, 2, v)

	err = db.QueryRow(ctx, `SELECT v FROM kv WHERE k = $1`, "zzz").Scan(&v)
	require.True(t, errors.Is(err, database.ErrNoRows))
}

func TestTxRollbackAfterCommitIsNoop(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `INSERT INTO t (id) VALUES ($1)`, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
}
