package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/pagamentos-api/internal/config"
)

// loadAppConfig loads the application configuration from the config file
// and environment variables.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary records the non-secret settings the server starts with.
func logConfigSummary(cfg *config.Config, logger *slog.Logger) {
	logger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("log_format", cfg.Server.LogFormat),
		slog.Bool("metrics_enabled", cfg.Server.MetricsEnabled),
		slog.Bool("trust_proxy_headers", cfg.Server.TrustProxyHeaders),
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.Int("page_default_size", cfg.Pagination.DefaultSize),
		slog.Int("page_max_size", cfg.Pagination.MaxSize))

	logger.Debug("database configuration",
		slog.String("url", maskDatabaseURL(cfg.Database.URL)),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate))
}
