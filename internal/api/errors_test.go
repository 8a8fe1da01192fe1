package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/service"
	"github.com/phrazzld/pagamentos-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "invalid credentials",
			err:            auth.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped token error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrExpiredToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError("nome", domain.MsgObrigatorio),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid format",
			err:            fmt.Errorf("%w: sort property", domain.ErrInvalidFormat),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found",
			err:            service.NewServiceError("get pessoa", "Pessoa não encontrada", service.ErrNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "conflict",
			err:            service.NewServiceError("delete categoria", "Categoria em uso", service.ErrConflict),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid state",
			err:            service.NewServiceError("update ativo", "já definido", service.ErrInvalidState),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown error",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: msgErroInesperado,
		},
		{
			name:     "service message is used",
			err:      service.NewServiceError("get pessoa", "Pessoa não encontrada", service.ErrNotFound),
			expected: "Pessoa não encontrada",
		},
		{
			name:     "bare not found sentinel",
			err:      service.ErrNotFound,
			expected: "Recurso não encontrado",
		},
		{
			name:     "invalid credentials",
			err:      auth.ErrInvalidCredentials,
			expected: msgCredenciaisInvalidas,
		},
		{
			name:     "expired token",
			err:      auth.ErrExpiredToken,
			expected: "Token expired",
		},
		{
			name:     "internal details are hidden",
			err:      service.NewServiceError("list", "failed to access pessoa", errors.New("pq: relation does not exist")),
			expected: msgErroInesperado,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("validation error lists fields", func(t *testing.T) {
		verr := domain.NewValidationError("endereco.cep", domain.MsgObrigatorio)
		verr.Add("nome", domain.MsgObrigatorio)

		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodPost, "/pessoas", nil), verr, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Dados inválidos", resp.Error)
		assert.Len(t, resp.Fields, 2)
		assert.Equal(t, "endereco.cep", resp.Fields[0].Field)
	})

	t.Run("internal error uses default message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := errors.New("dial tcp 10.0.0.5:5432: connection refused")
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/pessoas", nil), err, "Falha ao listar pessoas")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Falha ao listar pessoas", resp.Error)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})

	t.Run("conflict keeps service message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := service.NewServiceError("delete pessoa", "Pessoa em uso e não pode ser removida", service.ErrConflict)
		HandleAPIError(rec, httptest.NewRequest(http.MethodDelete, "/pessoas/1", nil), err, "Falha")

		require.Equal(t, http.StatusConflict, rec.Code)
		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "Pessoa em uso e não pode ser removida", resp.Error)
	})
}
