package api

import (
	"encoding/json"
	"time"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// Validate checks the validate tags, reporting missing credentials as
// field errors.
func (r LoginRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	// ExpiresAt is the RFC 3339 instant the token stops being accepted.
	ExpiresAt string `json:"expiresAt"`
	// ExpiresIn is the remaining token lifetime in milliseconds.
	ExpiresIn int64 `json:"expiresIn"`
}

// PageResponse is the JSON envelope of a paginated listing.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func newPageResponse[T, U any](p domain.Page[T], fn func(T) U) PageResponse[U] {
	mapped := domain.MapPage(p, fn)
	return PageResponse[U]{
		Content:       mapped.Content,
		Number:        mapped.Number,
		Size:          mapped.Size,
		TotalElements: mapped.TotalElements,
		TotalPages:    mapped.TotalPages(),
		First:         mapped.IsFirst(),
		Last:          mapped.IsLast(),
	}
}

func identity[T any](v T) T { return v }

// LancamentoResponse renders a Lancamento with valor as a JSON number
// carrying two decimal places.
type LancamentoResponse struct {
	Codigo         int64                 `json:"codigo"`
	Descricao      string                `json:"descricao"`
	DataVencimento domain.Date           `json:"dataVencimento"`
	DataPagamento  *domain.Date          `json:"dataPagamento"`
	Valor          json.Number           `json:"valor"`
	Observacao     string                `json:"observacao,omitempty"`
	Tipo           domain.TipoLancamento `json:"tipo"`
	Categoria      domain.Categoria      `json:"categoria"`
	Pessoa         domain.Pessoa         `json:"pessoa"`
}

func toLancamentoResponse(l *domain.Lancamento) LancamentoResponse {
	return LancamentoResponse{
		Codigo:         l.Codigo,
		Descricao:      l.Descricao,
		DataVencimento: l.DataVencimento,
		DataPagamento:  l.DataPagamento,
		Valor:          json.Number(l.Valor.StringFixed(domain.ValorScale)),
		Observacao:     l.Observacao,
		Tipo:           l.Tipo,
		Categoria:      l.Categoria,
		Pessoa:         l.Pessoa,
	}
}

// ResumoLancamentoResponse is the summary projection of a lancamento.
type ResumoLancamentoResponse struct {
	Codigo         int64                 `json:"codigo"`
	Descricao      string                `json:"descricao"`
	DataVencimento domain.Date           `json:"dataVencimento"`
	DataPagamento  *domain.Date          `json:"dataPagamento"`
	Valor          json.Number           `json:"valor"`
	Tipo           domain.TipoLancamento `json:"tipo"`
	Categoria      string                `json:"categoria"`
	Pessoa         string                `json:"pessoa"`
}

func toResumoResponse(r *domain.ResumoLancamento) ResumoLancamentoResponse {
	return ResumoLancamentoResponse{
		Codigo:         r.Codigo,
		Descricao:      r.Descricao,
		DataVencimento: r.DataVencimento,
		DataPagamento:  r.DataPagamento,
		Valor:          json.Number(r.Valor.StringFixed(domain.ValorScale)),
		Tipo:           r.Tipo,
		Categoria:      r.Categoria,
		Pessoa:         r.Pessoa,
	}
}

func loginResponse(token string, expiresAt, now time.Time) LoginResponse {
	return LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		ExpiresIn: max(expiresAt.Sub(now).Milliseconds(), 0),
	}
}
