// Package main implements the entry point for the pagamentos API server.
// Besides serving HTTP it offers the schema migration and account
// bootstrap commands an operator needs to bring up a new database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "pagamentos-api",
		Short:         "Payments API for pessoas, categorias and lancamentos",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	configPath := func() string { return cfgFile }

	root.AddCommand(newServeCmd(configPath))
	root.AddCommand(newMigrateCmd(configPath))
	root.AddCommand(newUserCmd(configPath))

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newServeCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadAppConfig(configPath())
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

			if cfg.Database.AutoMigrate {
				if err := runMigrations(ctx, db, logger, "up"); err != nil {
					_ = db.Close()
					return err
				}
			}

			app, err := newApplication(cfg, logger, db)
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run(ctx)
		},
	}
}
