package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/mocks"
	"github.com/phrazzld/pagamentos-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	claims := &auth.Claims{UsuarioCodigo: 1, Username: "admin@algamoney.com", Roles: []string{"ADMIN"}}

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		claims         *auth.Claims
		expectedStatus int
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			claims:         claims,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "lowercase scheme",
			authHeader:     "bearer valid-token",
			claims:         claims,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing auth header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "basic scheme",
			authHeader:     "Basic YWRtaW46YWRtaW4=",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unexpected validation failure",
			authHeader:     "Bearer some-token",
			validateErr:    errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{ValidateErr: tt.validateErr, Claims: tt.claims}
			mw := NewAuthMiddleware(jwtService)

			var captured *auth.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = shared.GetClaims(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/pessoas", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Same(t, tt.claims, captured)
			} else {
				assert.Nil(t, captured)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		claims *auth.Claims
		roles  []domain.Role
		want   int
	}{
		{name: "admin on admin route", claims: &auth.Claims{Roles: []string{"ADMIN"}}, roles: []domain.Role{domain.RoleAdmin}, want: http.StatusOK},
		{name: "user on shared route", claims: &auth.Claims{Roles: []string{"USER"}}, roles: []domain.Role{domain.RoleAdmin, domain.RoleUser}, want: http.StatusOK},
		{name: "user on admin route", claims: &auth.Claims{Roles: []string{"USER"}}, roles: []domain.Role{domain.RoleAdmin}, want: http.StatusForbidden},
		{name: "no roles", claims: &auth.Claims{}, roles: []domain.Role{domain.RoleUser}, want: http.StatusForbidden},
		{name: "unauthenticated", roles: []domain.Role{domain.RoleUser}, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodDelete, "/pessoas/1", nil)
			if tt.claims != nil {
				req = req.WithContext(shared.WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			RequireRole(tt.roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
		})
	}
}
