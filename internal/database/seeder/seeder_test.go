package seeder

import (
	"context"
	"testing"

	"staffmatch/internal/database"
	"staffmatch/internal/database/migration"
	"staffmatch/internal/database/sqlite"

	"github.com/stretchr/testify/require"
)

func migratedDB(t *testing.T) database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.Apply(ctx, db))
	return db
}

func count(t *testing.T, db database.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestDefaultsSeedIdempotently(t *testing.T) {
	ctx := context.Background()
	db := migratedDB(t)

	r := Runner{Seeders: Defaults()}
	require.NoError(t, r.Run(ctx, db))

	employees := count(t, db, "employees")
	skills := count(t, db, "employee_skills")
	require.EqualValues(t, len(demoRoster), employees)
	require.NotZero(t, skills)

	require.NoError(t, r.Run(ctx, db))
	require.Equal(t, employees, count(t, db, "employees"))
	require.Equal(t, skills, count(t, db, "employee_skills"))
}

func TestEnsureTableColumnsReportsMissingColumn(t *testing.T) {
	db := migratedDB(t)
	err := EnsureTableColumns(context.Background(), db, "skills", "id", "nope")
	require.ErrorContains(t, err, "missing column skills.nope")
}
