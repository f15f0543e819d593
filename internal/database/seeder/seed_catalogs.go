package seeder

import (
	"context"
	"fmt"

	"staffmatch/internal/database"
)

type LanguagesSeeder struct{}

func (LanguagesSeeder) Name() string { return "languages" }

func (LanguagesSeeder) Run(ctx context.Context, db database.DB) error {
	return seedNames(ctx, db, "languages", []string{"English", "German", "Spanish", "French", "Indonesian"})
}

type LocationsSeeder struct{}

func (LocationsSeeder) Name() string { return "locations" }

func (LocationsSeeder) Run(ctx context.Context, db database.DB) error {
	return seedNames(ctx, db, "locations", []string{"Berlin", "Madrid", "Jakarta", "Remote"})
}

// seedNames fills a (id, name UNIQUE) lookup table.
func seedNames(ctx context.Context, db database.DB, table string, names []string) error {
	if err := EnsureTableColumns(ctx, db, table, "id", "name"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	q := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, table)
	for _, n := range names {
		if _, err := tx.Exec(ctx, q, n); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
