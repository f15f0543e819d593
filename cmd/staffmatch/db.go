package main

import (
	"context"
	"fmt"

	"staffmatch/internal/app"
	"staffmatch/internal/database"
	"staffmatch/internal/database/migration"
	"staffmatch/internal/database/seeder"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
				if err := migration.Apply(ctx, db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				opts.log.Info("migrations applied")
				return nil
			})
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate, then load the skill catalog and demo roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
				if err := migration.Apply(ctx, db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
					return err
				}
				opts.log.Info("seed completed")
				return nil
			})
		},
	}
}

func (o *rootOptions) withDB(ctx context.Context, fn func(context.Context, database.DB) error) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	db, err := app.Connect(ctx, cfg.Database, o.log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(ctx, db)
}
