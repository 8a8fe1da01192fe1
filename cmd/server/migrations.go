package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/pagamentos-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// Supported migration commands.
const (
	migrateUp      = "up"
	migrateDown    = "down"
	migrateStatus  = "status"
	migrateVersion = "version"
)

func newMigrateCmd(configPath func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  "Apply, roll back or inspect the embedded goose migrations.",
	}

	for _, sub := range []struct {
		name  string
		short string
	}{
		{migrateUp, "Apply all pending migrations"},
		{migrateDown, "Roll back the most recent migration"},
		{migrateStatus, "Show the state of every migration"},
		{migrateVersion, "Print the current schema version"},
	} {
		command := sub.name
		cmd.AddCommand(&cobra.Command{
			Use:   command,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDatabase(cmd.Context(), configPath(), func(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
					return runMigrations(ctx, db, logger, command)
				})
			},
		})
	}

	return cmd
}

// runMigrations executes one migration command against db. Every run gets
// its own correlation id so the goose output of one invocation can be
// grouped in the logs.
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger, command string) error {
	logger = logger.With(slog.String("correlation_id", uuid.NewString()),
		slog.String("migration_command", command))

	migrator, err := postgres.NewMigrator(db, logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	logger.Info("executing migrations")

	switch command {
	case migrateUp:
		err = migrator.Up(ctx)
	case migrateDown:
		err = migrator.Down(ctx)
	case migrateStatus:
		err = migrator.Status(ctx)
	case migrateVersion:
		var v int64
		v, err = migrator.Version(ctx)
		if err == nil {
			logger.Info("current schema version", slog.Int64("version", v))
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return err
	}

	logger.Info("migration command completed")
	return nil
}

// withDatabase loads configuration, opens the database and runs fn,
// closing the pool afterwards.
func withDatabase(
	ctx context.Context,
	configPath string,
	fn func(ctx context.Context, db *sql.DB, logger *slog.Logger) error,
) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return fn(ctx, db, logger)
}
