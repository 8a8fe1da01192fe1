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

// LancamentoHandler serves the /lancamentos resource.
type LancamentoHandler struct {
	lancamentos service.LancamentoService
	pagination  config.PaginationConfig
	logger      *slog.Logger
}

// NewLancamentoHandler creates a LancamentoHandler.
func NewLancamentoHandler(
	lancamentos service.LancamentoService,
	pagination config.PaginationConfig,
	logger *slog.Logger,
) *LancamentoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LancamentoHandler{
		lancamentos: lancamentos,
		pagination:  pagination,
		logger:      logger.With(slog.String("component", "lancamento_handler")),
	}
}

// Routes registers the lancamento endpoints.
func (h *LancamentoHandler) Routes(r chi.Router) {
	anyRole := middleware.RequireRole(domain.RoleAdmin, domain.RoleUser)

	r.With(anyRole).Get("/", h.Search)
	r.With(anyRole).Get("/resumo", h.Summarize)
	r.With(anyRole).Post("/", h.Create)
	r.With(anyRole).Get("/{codigo}", h.Get)
	r.With(anyRole).Put("/{codigo}", h.Update)
	r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{codigo}", h.Delete)
}

func (h *LancamentoHandler) searchParams(r *http.Request) (domain.LancamentoFilter, domain.PageRequest, error) {
	filter, err := lancamentoFilter(r)
	if err != nil {
		return domain.LancamentoFilter{}, domain.PageRequest{}, err
	}
	page, err := parsePageRequest(r, h.pagination, domain.LancamentoSortFields)
	if err != nil {
		return domain.LancamentoFilter{}, domain.PageRequest{}, err
	}
	return filter, page, nil
}

// Search handles GET /lancamentos.
func (h *LancamentoHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, page, err := h.searchParams(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.lancamentos.Search(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao pesquisar lançamentos")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newPageResponse(result, toLancamentoResponse))
}

// Summarize handles GET /lancamentos/resumo.
func (h *LancamentoHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	filter, page, err := h.searchParams(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.lancamentos.Summarize(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao resumir lançamentos")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newPageResponse(result, toResumoResponse))
}

// Get handles GET /lancamentos/{codigo}.
func (h *LancamentoHandler) Get(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	lancamento, err := h.lancamentos.GetByID(r.Context(), codigo)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao buscar lançamento")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toLancamentoResponse(lancamento))
}

// Create handles POST /lancamentos.
func (h *LancamentoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.LancamentoInput
	if !decodeBody(w, r, &in) {
		return
	}

	lancamento, err := h.lancamentos.Create(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao criar lançamento")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("lancamento created", slog.Int64("lancamento_codigo", lancamento.Codigo))
	w.Header().Set("Location", resourceLocation(r, lancamento.Codigo))
	shared.RespondWithJSON(w, r, http.StatusCreated, toLancamentoResponse(lancamento))
}

// Update handles PUT /lancamentos/{codigo}.
func (h *LancamentoHandler) Update(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var in domain.LancamentoInput
	if !decodeBody(w, r, &in) {
		return
	}

	lancamento, err := h.lancamentos.Update(r.Context(), codigo, in)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao atualizar lançamento")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toLancamentoResponse(lancamento))
}

// Delete handles DELETE /lancamentos/{codigo}.
func (h *LancamentoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.lancamentos.Delete(r.Context(), codigo); err != nil {
		HandleAPIError(w, r, err, "Falha ao remover lançamento")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("lancamento deleted", slog.Int64("lancamento_codigo", codigo))
	w.WriteHeader(http.StatusNoContent)
}
