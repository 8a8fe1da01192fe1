package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/pagamentos-api/internal/api"
	"github.com/phrazzld/pagamentos-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	if app.config.Server.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.NewTraceMiddleware(app.logger))
	if app.metrics != nil {
		r.Use(app.metrics.Handler)
	}
	r.Use(chimiddleware.Recoverer)

	authHandler := api.NewAuthHandler(app.authenticator, app.jwtService, app.logger)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	pessoaHandler := api.NewPessoaHandler(app.pessoaService, app.config.Pagination, app.logger)
	categoriaHandler := api.NewCategoriaHandler(app.categoriaService, app.logger)
	lancamentoHandler := api.NewLancamentoHandler(app.lancamentoService, app.config.Pagination, app.logger)

	// Public
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(app.loginLimiter.Handler)
		authHandler.Routes(r)
	})

	// Protected; each handler applies its own role checks.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Route("/pessoas", pessoaHandler.Routes)
		r.Route("/categorias", categoriaHandler.Routes)
		r.Route("/lancamentos", lancamentoHandler.Routes)
	})

	r.Get("/health", app.health)
	if app.metrics != nil {
		r.Method(http.MethodGet, "/metrics", app.metrics.Exposition())
	}

	return r
}

// health reports liveness. It does not touch the database.
func (app *application) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
