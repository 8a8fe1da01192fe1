package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/pagamentos-api/internal/api/middleware"
	"github.com/phrazzld/pagamentos-api/internal/config"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/mocks"
	"github.com/phrazzld/pagamentos-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app        *application
	jwt        *mocks.MockJWTService
	auth       *mocks.MockAuthenticator
	pessoas    *mocks.MockPessoaService
	categorias *mocks.MockCategoriaService
}

func newTestApp(t *testing.T, metricsEnabled bool) *testApp {
	t.Helper()
	return newTestAppWithServer(t, config.ServerConfig{Port: 8080, MetricsEnabled: metricsEnabled})
}

func newTestAppWithServer(t *testing.T, server config.ServerConfig) *testApp {
	t.Helper()

	cfg := &config.Config{
		Server:     server,
		Auth:       config.AuthConfig{LoginRateLimitPerMinute: 1, LoginRateLimitBurst: 1},
		Pagination: config.PaginationConfig{DefaultSize: 20, MaxSize: 100},
	}

	ta := &testApp{
		jwt:        &mocks.MockJWTService{},
		auth:       &mocks.MockAuthenticator{Err: auth.ErrInvalidCredentials},
		pessoas:    &mocks.MockPessoaService{},
		categorias: &mocks.MockCategoriaService{},
	}
	ta.app = &application{
		config:            cfg,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		jwtService:        ta.jwt,
		authenticator:     ta.auth,
		pessoaService:     ta.pessoas,
		categoriaService:  ta.categorias,
		lancamentoService: &mocks.MockLancamentoService{},
		loginLimiter:      middleware.NewRateLimiter(cfg.Auth.LoginRateLimitPerMinute, cfg.Auth.LoginRateLimitBurst),
	}
	if server.MetricsEnabled {
		ta.app.metrics = middleware.NewMetrics()
	}
	return ta
}

func (ta *testApp) do(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.10:54321"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ta.app.setupRouter().ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	rec := newTestApp(t, false).do(http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, false)
	for _, target := range []string{"/pessoas", "/categorias", "/lancamentos", "/lancamentos/resumo"} {
		rec := ta.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestRouter_RoleEnforcement(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, false)
	ta.jwt.Claims = &auth.Claims{UsuarioCodigo: 2, Username: "maria@algamoney.com", Roles: []string{"USER"}}
	ta.categorias.On("List", mock.Anything).Return([]*domain.Categoria{{Codigo: 1, Nome: "Lazer"}}, nil)

	rec := ta.do(http.MethodGet, "/categorias", "user-token")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(http.MethodDelete, "/pessoas/1", "user-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	ta.pessoas.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, false)
	login := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"admin@algamoney.com","password":"wrong"}`))
		req.RemoteAddr = "192.0.2.10:54321"
		rec := httptest.NewRecorder()
		ta.app.setupRouter().ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
	assert.Equal(t, 1, ta.auth.CallCount)
}

func TestRouter_LoginLimitIgnoresForwardedHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		trustProxy    bool
		wantAccepted  int
		wantAuthCalls int
	}{
		{name: "proxy headers untrusted by default", trustProxy: false, wantAccepted: 1, wantAuthCalls: 1},
		{name: "proxy headers trusted when configured", trustProxy: true, wantAccepted: 10, wantAuthCalls: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ta := newTestAppWithServer(t, config.ServerConfig{Port: 8080, TrustProxyHeaders: tt.trustProxy})
			router := ta.app.setupRouter()

			accepted := 0
			for i := 0; i < 10; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
					strings.NewReader(`{"username":"admin@algamoney.com","password":"wrong"}`))
				req.RemoteAddr = "192.0.2.10:54321"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
				req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i+1))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)
				if rec.Code != http.StatusTooManyRequests {
					accepted++
				}
			}

			assert.Equal(t, tt.wantAccepted, accepted)
			assert.Equal(t, tt.wantAuthCalls, ta.auth.CallCount)
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	t.Run("enabled", func(t *testing.T) {
		ta := newTestApp(t, true)
		ta.do(http.MethodGet, "/health", "")

		rec := ta.do(http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `pagamentos_http_requests_total{method="GET",route="/health",status="200"} 1`)
	})

	t.Run("disabled", func(t *testing.T) {
		rec := newTestApp(t, false).do(http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNewApplication_ExposesPoolMetrics(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, MetricsEnabled: true},
		Auth: config.AuthConfig{
			JWTSecret:            "0123456789abcdef0123456789abcdef",
			TokenLifetimeMinutes: 60,
		},
		Pagination: config.PaginationConfig{DefaultSize: 20, MaxSize: 100},
	}

	app, err := newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), db)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `go_sql_max_open_connections{db_name="pagamentos"}`)
}
