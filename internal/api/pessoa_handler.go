package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pagamentos-api/internal/api/middleware"
	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/config"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/service"
)

// PessoaHandler serves the /pessoas resource.
type PessoaHandler struct {
	pessoas    service.PessoaService
	pagination config.PaginationConfig
	logger     *slog.Logger
}

// NewPessoaHandler creates a PessoaHandler.
func NewPessoaHandler(
	pessoas service.PessoaService,
	pagination config.PaginationConfig,
	logger *slog.Logger,
) *PessoaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PessoaHandler{
		pessoas:    pessoas,
		pagination: pagination,
		logger:     logger.With(slog.String("component", "pessoa_handler")),
	}
}

// Routes registers the pessoa endpoints with their role requirements.
// Callers mount it behind the authentication middleware.
func (h *PessoaHandler) Routes(r chi.Router) {
	anyRole := middleware.RequireRole(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r.With(anyRole).Get("/", h.List)
	r.With(anyRole).Post("/", h.Create)
	r.With(anyRole).Get("/{codigo}", h.Get)
	r.With(anyRole).Put("/{codigo}", h.Update)
	r.With(adminOnly).Patch("/{codigo}/ativo", h.UpdateAtivo)
	r.With(adminOnly).Delete("/{codigo}", h.Delete)
}

// List handles GET /pessoas.
func (h *PessoaHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r, h.pagination, domain.PessoaSortFields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var nome *string
	if q := r.URL.Query(); q.Has("nome") {
		v := q.Get("nome")
		nome = &v
	}

	result, err := h.pessoas.List(r.Context(), nome, page)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao listar pessoas")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newPageResponse(result, identity[*domain.Pessoa]))
}

// Get handles GET /pessoas/{codigo}.
func (h *PessoaHandler) Get(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	pessoa, err := h.pessoas.GetByID(r.Context(), codigo)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao buscar pessoa")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pessoa)
}

// Create handles POST /pessoas.
func (h *PessoaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.PessoaInput
	if !decodeBody(w, r, &in) {
		return
	}

	pessoa, err := h.pessoas.Create(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao criar pessoa")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("pessoa created", slog.Int64("pessoa_codigo", pessoa.Codigo))
	w.Header().Set("Location", resourceLocation(r, pessoa.Codigo))
	shared.RespondWithJSON(w, r, http.StatusCreated, pessoa)
}

// Update handles PUT /pessoas/{codigo}.
func (h *PessoaHandler) Update(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var in domain.PessoaInput
	if !decodeBody(w, r, &in) {
		return
	}

	pessoa, err := h.pessoas.Update(r.Context(), codigo, in)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao atualizar pessoa")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, pessoa)
}

// UpdateAtivo handles PATCH /pessoas/{codigo}/ativo. The body is a bare
// JSON boolean.
func (h *PessoaHandler) UpdateAtivo(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var ativo *bool
	if !decodeBody(w, r, &ativo) {
		return
	}
	if ativo == nil {
		shared.RespondWithValidationError(w, r, domain.NewValidationError("ativo", domain.MsgObrigatorio))
		return
	}

	pessoa, err := h.pessoas.UpdateAtivo(r.Context(), codigo, *ativo)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao atualizar status da pessoa")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("pessoa status changed",
		slog.Int64("pessoa_codigo", codigo),
		slog.Bool("ativo", pessoa.Ativo))
	shared.RespondWithJSON(w, r, http.StatusOK, pessoa)
}

// Delete handles DELETE /pessoas/{codigo}.
func (h *PessoaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.pessoas.Delete(r.Context(), codigo); err != nil {
		HandleAPIError(w, r, err, "Falha ao remover pessoa")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("pessoa deleted", slog.Int64("pessoa_codigo", codigo))
	w.WriteHeader(http.StatusNoContent)
}

