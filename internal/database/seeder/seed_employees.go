package seeder

import (
	"context"
	"fmt"

	"staffmatch/internal/database"
)

type EmployeesSeeder struct{}

func (EmployeesSeeder) Name() string { return "employees" }

type demoSkill struct {
	Name  string
	Years int
}

type demoEmployee struct {
	FullName  string
	Email     string
	Role      string
	Seniority string
	Years     int
	Location  string
	Skills    []demoSkill
	Languages []string
}

var demoRoster = []demoEmployee{
	{
		FullName: "Ana Torres", Email: "ana.torres@example.com", Role: "Backend Engineer", Seniority: "Senior", Years: 8, Location: "Madrid",
		Skills:    []demoSkill{{"Go", 6}, {"PostgreSQL", 7}, {"Docker", 5}, {"Kubernetes", 3}},
		Languages: []string{"Spanish", "English"},
	},
	{
		FullName: "Lukas Brandt", Email: "lukas.brandt@example.com", Role: "Frontend Engineer", Seniority: "Mid", Years: 4, Location: "Berlin",
		Skills:    []demoSkill{{"TypeScript", 4}, {"React", 4}, {"Next.js", 2}, {"Figma", 1}},
		Languages: []string{"German", "English"},
	},
	{
		FullName: "Sari Wulandari", Email: "sari.wulandari@example.com", Role: "Fullstack Engineer", Seniority: "Junior", Years: 2, Location: "Jakarta",
		Skills:    []demoSkill{{"JavaScript", 2}, {"Node.js", 2}, {"React", 1}},
		Languages: []string{"Indonesian", "English"},
	},
	{
		FullName: "Marc Dubois", Email: "marc.dubois@example.com", Role: "Platform Engineer", Seniority: "Lead", Years: 12, Location: "Remote",
		Skills:    []demoSkill{{"Kubernetes", 8}, {"AWS", 9}, {"Docker", 10}, {"Go", 5}},
		Languages: []string{"French", "English"},
	},
	{
		FullName: "Priya Nair", Email: "priya.nair@example.com", Role: "Data Engineer", Seniority: "Senior", Years: 9, Location: "Remote",
		Skills:    []demoSkill{{"Python", 8}, {"PostgreSQL", 6}, {"GCP", 4}},
		Languages: []string{"English"},
	},
	{
		FullName: "Jonas Weber", Email: "jonas.weber@example.com", Role: "Backend Engineer", Seniority: "Mid", Years: 5, Location: "Berlin",
		Skills:    []demoSkill{{"Java", 5}, {"PostgreSQL", 4}, {"Redis", 3}},
		Languages: []string{"German", "English"},
	},
	{
		FullName: "Elena Ruiz", Email: "elena.ruiz@example.com", Role: "Architect", Seniority: "Principal", Years: 16, Location: "Madrid",
		Skills:    []demoSkill{{"Go", 7}, {"Java", 12}, {"AWS", 8}, {"Kubernetes", 6}},
		Languages: []string{"Spanish", "English", "French"},
	},
	{
		FullName: "Budi Santoso", Email: "budi.santoso@example.com", Role: "Frontend Engineer", Seniority: "Junior", Years: 1, Location: "Jakarta",
		Skills:    []demoSkill{{"JavaScript", 1}, {"React", 1}, {"Figma", 2}},
		Languages: []string{"Indonesian"},
	},
}

func (EmployeesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "employees", "id", "fullname", "email", "role", "seniority", "total_experience_years", "location_id"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, e := range demoRoster {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO employees (fullname, email, role, seniority, total_experience_years, location_id)
VALUES ($1, $2, $3, $4, $5, (SELECT id FROM locations WHERE name = $6))
ON CONFLICT (email) DO NOTHING`,
			e.FullName, e.Email, e.Role, e.Seniority, e.Years, e.Location,
		); err != nil {
			return fmt.Errorf("employee %s: %w", e.Email, err)
		}

		for _, s := range e.Skills {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO employee_skills (employee_id, skill_id, years)
SELECT e.id, s.id, CAST($3 AS INTEGER) FROM employees e, skills s WHERE e.email = $1 AND s.name = $2
ON CONFLICT DO NOTHING`,
				e.Email, s.Name, s.Years,
			); err != nil {
				return fmt.Errorf("employee %s skill %s: %w", e.Email, s.Name, err)
			}
		}

		for _, l := range e.Languages {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO employee_languages (employee_id, language_id)
SELECT e.id, l.id FROM employees e, languages l WHERE e.email = $1 AND l.name = $2
ON CONFLICT DO NOTHING`,
				e.Email, l,
			); err != nil {
				return fmt.Errorf("employee %s language %s: %w", e.Email, l, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
