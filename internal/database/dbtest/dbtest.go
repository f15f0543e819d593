// Package dbtest provides migrated in-memory databases and row fixtures for tests.
package dbtest

import (
	"context"
	"testing"

	"staffmatch/internal/database"
	"staffmatch/internal/database/migration"
	"staffmatch/internal/database/sqlite"
)

// New returns a migrated in-memory sqlite database closed at test cleanup.
func New(t testing.TB) database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := migration.Apply(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func Exec(t testing.TB, db database.DB, query string, args ...any) int64 {
	t.Helper()
	n, err := db.Exec(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
	return n
}

func insertID(t testing.TB, db database.DB, query string, args ...any) int64 {
	t.Helper()
	var id int64
	if err := db.QueryRow(context.Background(), query, args...).Scan(&id); err != nil {
		t.Fatalf("insert %q: %v", query, err)
	}
	return id
}

func AddSkill(t testing.TB, db database.DB, name string) int64 {
	t.Helper()
	return insertID(t, db, `INSERT INTO skills (name) VALUES ($1) RETURNING id`, name)
}

type Employee struct {
	FullName  string
	Role      string
	Seniority string
	Years     int
	Location  string
	Skills    map[int64]int
	Languages []string
}

// AddEmployee inserts e, creating its location and languages on demand.
func AddEmployee(t testing.TB, db database.DB, e Employee) int64 {
	t.Helper()
	var locationID any
	if e.Location != "" {
		Exec(t, db, `INSERT INTO locations (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, e.Location)
		locationID = insertID(t, db, `SELECT id FROM locations WHERE name = $1`, e.Location)
	}

	id := insertID(t, db,
		`INSERT INTO employees (fullname, email, role, seniority, total_experience_years, location_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		e.FullName, e.FullName+"@test.local", e.Role, e.Seniority, e.Years, locationID,
	)
	for skillID, years := range e.Skills {
		Exec(t, db, `INSERT INTO employee_skills (employee_id, skill_id, years) VALUES ($1, $2, $3)`, id, skillID, years)
	}
	for _, l := range e.Languages {
		Exec(t, db, `INSERT INTO languages (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, l)
		langID := insertID(t, db, `SELECT id FROM languages WHERE name = $1`, l)
		Exec(t, db, `INSERT INTO employee_languages (employee_id, language_id) VALUES ($1, $2)`, id, langID)
	}
	return id
}

func AddProject(t testing.TB, db database.DB, name, description string) int64 {
	t.Helper()
	return insertID(t, db, `INSERT INTO projects (name, description) VALUES ($1, $2) RETURNING id`, name, description)
}

// Assign adds a team row directly; a nil score marks a manual assignment.
func Assign(t testing.TB, db database.DB, projectID, employeeID int64, score *float64) {
	t.Helper()
	Exec(t, db, `INSERT INTO project_team (project_id, employee_id, score) VALUES ($1, $2, $3)`, projectID, employeeID, score)
}

func Float(v float64) *float64 { return &v }
