package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// newRequest builds a request whose context already carries claims for
// the given roles. No roles means an anonymous request.
func newRequest(t *testing.T, method, target string, body any, roles ...domain.Role) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(roles) == 0 {
		return req
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	claims := &auth.Claims{UsuarioCodigo: 1, Username: "admin@algamoney.com", Roles: names}
	return req.WithContext(shared.WithClaims(req.Context(), claims))
}

// serve mounts routes under prefix and runs req through the router.
func serve(prefix string, routes func(chi.Router), req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route(prefix, routes)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func testPessoa(codigo int64, ativo bool) *domain.Pessoa {
	return &domain.Pessoa{
		Codigo: codigo,
		Nome:   "Maria Silva",
		Ativo:  ativo,
		Endereco: domain.Endereco{
			Logradouro: "Rua das Flores, 10",
			Cidade:     "Uberlândia",
			Estado:     "MG",
			Cep:        "38400-000",
		},
	}
}
