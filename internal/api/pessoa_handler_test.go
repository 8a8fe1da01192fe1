package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/mocks"
	"github.com/phrazzld/pagamentos-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPessoaTestHandler() (*PessoaHandler, *mocks.MockPessoaService) {
	svc := &mocks.MockPessoaService{}
	return NewPessoaHandler(svc, testPagination, nil), svc
}

func TestPessoaHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("filters by nome and pages", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()
		nome := "mar"
		wantPage := domain.PageRequest{Page: 1, Size: 2, Sort: []domain.SortOrder{{Property: "nome", Direction: domain.Asc}}}
		result := domain.NewPage([]*domain.Pessoa{testPessoa(3, true), testPessoa(4, false)}, wantPage, 5)
		svc.On("List", mock.Anything, &nome, wantPage).Return(result, nil)

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodGet,
			"/pessoas?nome=mar&page=1&size=2&sort=nome", nil, domain.RoleUser))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp PageResponse[domain.Pessoa]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Content, 2)
		assert.Equal(t, 1, resp.Number)
		assert.Equal(t, 2, resp.Size)
		assert.Equal(t, int64(5), resp.TotalElements)
		assert.Equal(t, 3, resp.TotalPages)
		assert.False(t, resp.First)
		assert.False(t, resp.Last)
		svc.AssertExpectations(t)
	})

	t.Run("no nome parameter passes nil", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()
		wantPage := domain.PageRequest{Page: 0, Size: 20}
		svc.On("List", mock.Anything, (*string)(nil), wantPage).
			Return(domain.NewPage[*domain.Pessoa](nil, wantPage, 0), nil)

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodGet, "/pessoas", nil, domain.RoleAdmin))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"content":[],"number":0,"size":20,"totalElements":0,"totalPages":0,"first":true,"last":true}`,
			rec.Body.String())
	})

	t.Run("unknown sort field", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodGet,
			"/pessoas?sort=endereco", nil, domain.RoleAdmin))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPessoaHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()
		svc.On("GetByID", mock.Anything, int64(7)).Return(testPessoa(7, true), nil)

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodGet, "/pessoas/7", nil, domain.RoleUser))

		require.Equal(t, http.StatusOK, rec.Code)
		var got domain.Pessoa
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, *testPessoa(7, true), got)
	})

	t.Run("not found", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()
		svc.On("GetByID", mock.Anything, int64(99)).
			Return(nil, service.NewServiceError("get pessoa", "Pessoa não encontrada", service.ErrNotFound))

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodGet, "/pessoas/99", nil, domain.RoleUser))

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Pessoa não encontrada", decodeError(t, rec).Error)
	})

	t.Run("non numeric codigo", func(t *testing.T) {
		handler, _ := newPessoaTestHandler()

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodGet, "/pessoas/abc", nil, domain.RoleUser))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		require.Len(t, resp.Fields, 1)
		assert.Equal(t, "codigo", resp.Fields[0].Field)
	})

	t.Run("anonymous request", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodGet, "/pessoas/7", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestPessoaHandler_Create(t *testing.T) {
	t.Parallel()

	t.Run("created with location", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in domain.PessoaInput) bool {
			return in.Nome == "Maria Silva" && in.Ativo != nil && *in.Ativo && in.Endereco != nil
		})).Return(testPessoa(10, true), nil)

		body := map[string]any{
			"nome":  "Maria Silva",
			"ativo": true,
			"endereco": map[string]string{
				"logradouro": "Rua das Flores, 10",
				"cidade":     "Uberlândia",
				"estado":     "MG",
				"cep":        "38400-000",
			},
		}
		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodPost, "/pessoas", body, domain.RoleUser))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/pessoas/10", rec.Header().Get("Location"))
		svc.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()
		verr := domain.NewValidationError("nome", domain.MsgObrigatorio)
		verr.Add("endereco", domain.MsgObrigatorio)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, verr)

		rec := serve("/pessoas", handler.Routes,
			newRequest(t, http.MethodPost, "/pessoas", map[string]any{"ativo": true}, domain.RoleUser))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "Dados inválidos", resp.Error)
		assert.Len(t, resp.Fields, 2)
	})

	t.Run("empty body", func(t *testing.T) {
		handler, svc := newPessoaTestHandler()

		rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodPost, "/pessoas", nil, domain.RoleUser))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgCorpoAusente, decodeError(t, rec).Error)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPessoaHandler_Update(t *testing.T) {
	t.Parallel()

	handler, svc := newPessoaTestHandler()
	updated := testPessoa(3, false)
	updated.Nome = "Maria Souza"
	svc.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(in domain.PessoaInput) bool {
		return in.Nome == "Maria Souza"
	})).Return(updated, nil)

	rec := serve("/pessoas", handler.Routes, newRequest(t, http.MethodPut, "/pessoas/3",
		map[string]any{"nome": "Maria Souza", "ativo": false}, domain.RoleUser))

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Pessoa
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Maria Souza", got.Nome)
	assert.False(t, got.Ativo)
}

func TestPessoaHandler_UpdateAtivo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		roles          []domain.Role
		setup          func(svc *mocks.MockPessoaService)
		expectedStatus int
	}{
		{
			name:  "deactivate",
			body:  "false",
			roles: []domain.Role{domain.RoleAdmin},
			setup: func(svc *mocks.MockPessoaService) {
				svc.On("UpdateAtivo", mock.Anything, int64(5), false).Return(testPessoa(5, false), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "already active",
			body:  "true",
			roles: []domain.Role{domain.RoleAdmin},
			setup: func(svc *mocks.MockPessoaService) {
				svc.On("UpdateAtivo", mock.Anything, int64(5), true).Return(nil,
					service.NewServiceError("update ativo", "O status 'ativo' já está definido como true.",
						service.ErrInvalidState))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:  "missing pessoa",
			body:  "true",
			roles: []domain.Role{domain.RoleAdmin},
			setup: func(svc *mocks.MockPessoaService) {
				svc.On("UpdateAtivo", mock.Anything, int64(5), true).Return(nil,
					service.NewServiceError("update ativo", "Pessoa não encontrada", service.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "null body",
			body:           "null",
			roles:          []domain.Role{domain.RoleAdmin},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "string body",
			body:           `"yes"`,
			roles:          []domain.Role{domain.RoleAdmin},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "user role is forbidden",
			body:           "false",
			roles:          []domain.Role{domain.RoleUser},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, svc := newPessoaTestHandler()
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := serve("/pessoas", handler.Routes,
				newRequest(t, http.MethodPatch, "/pessoas/5/ativo", tt.body, tt.roles...))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestPessoaHandler_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		roles          []domain.Role
		svcErr         error
		callsService   bool
		expectedStatus int
	}{
		{
			name:           "admin deletes",
			roles:          []domain.Role{domain.RoleAdmin},
			callsService:   true,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:  "in use",
			roles: []domain.Role{domain.RoleAdmin},
			svcErr: service.NewServiceError("delete pessoa", "Pessoa em uso e não pode ser removida",
				service.ErrConflict),
			callsService:   true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "user role is forbidden",
			roles:          []domain.Role{domain.RoleUser},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, svc := newPessoaTestHandler()
			if tt.callsService {
				svc.On("Delete", mock.Anything, int64(8)).Return(tt.svcErr)
			}

			rec := serve("/pessoas", handler.Routes,
				newRequest(t, http.MethodDelete, "/pessoas/8", nil, tt.roles...))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if !tt.callsService {
				svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
			svc.AssertExpectations(t)
		})
	}
}
