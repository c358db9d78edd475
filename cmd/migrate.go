package main

import (
	"context"
	"fmt"

	"github.com/mxsolis/contentbot/internal/shared"
	"github.com/urfave/cli/v3"
)

// MigrateUp applies all pending migrations.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writeOK("migrations applied: %s", config.Database.Path)
	return nil
}

// MigrateDown rolls back the most recently applied migration.
func (r *Runner) MigrateDown(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.writeOK("rolled back most recent migration: %s", config.Database.Path)
	return nil
}
