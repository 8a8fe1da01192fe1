package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pagamentos-api/internal/api"
	"github.com/phrazzld/pagamentos-api/internal/api/middleware"
	"github.com/phrazzld/pagamentos-api/internal/config"
	"github.com/phrazzld/pagamentos-api/internal/platform/postgres"
	"github.com/phrazzld/pagamentos-api/internal/service"
	"github.com/phrazzld/pagamentos-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"
)

// limiterJanitorInterval is how often idle login limiter entries are dropped.
const limiterJanitorInterval = time.Minute

// dbStatsName labels the connection pool metrics (db_name).
const dbStatsName = "pagamentos"

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService    auth.JWTService
	authenticator api.CredentialChecker

	pessoaService     service.PessoaService
	categoriaService  service.CategoriaService
	lancamentoService service.LancamentoService

	loginLimiter *middleware.RateLimiter
	metrics      *middleware.Metrics
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	pessoaStore := postgres.NewPostgresPessoaStore(db, logger)
	categoriaStore := postgres.NewPostgresCategoriaStore(db, logger)
	lancamentoStore := postgres.NewPostgresLancamentoStore(db, logger)
	usuarioStore := postgres.NewPostgresUsuarioStore(db, bcrypt.DefaultCost, logger)

	app.authenticator, err = auth.NewAuthenticator(usuarioStore, auth.NewBcryptVerifier(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	app.pessoaService, err = service.NewPessoaService(db, pessoaStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create pessoa service: %w", err)
	}

	app.categoriaService, err = service.NewCategoriaService(db, categoriaStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create categoria service: %w", err)
	}

	app.lancamentoService, err = service.NewLancamentoService(db, lancamentoStore, categoriaStore, pessoaStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create lancamento service: %w", err)
	}

	app.loginLimiter = middleware.NewRateLimiter(cfg.Auth.LoginRateLimitPerMinute, cfg.Auth.LoginRateLimitBurst)
	if cfg.Server.MetricsEnabled {
		app.metrics = middleware.NewMetrics()
		app.metrics.Registry().MustRegister(collectors.NewDBStatsCollector(db, dbStatsName))
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It blocks until ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	app.loginLimiter.StartJanitor(ctx, limiterJanitorInterval)

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
