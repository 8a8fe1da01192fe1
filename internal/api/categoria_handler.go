package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pagamentos-api/internal/api/middleware"
	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/service"
)

// CategoriaHandler serves the /categorias resource.
type CategoriaHandler struct {
	categorias service.CategoriaService
	logger     *slog.Logger
}

// NewCategoriaHandler creates a CategoriaHandler.
func NewCategoriaHandler(categorias service.CategoriaService, logger *slog.Logger) *CategoriaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoriaHandler{
		categorias: categorias,
		logger:     logger.With(slog.String("component", "categoria_handler")),
	}
}

// Routes registers the categoria endpoints.
func (h *CategoriaHandler) Routes(r chi.Router) {
	anyRole := middleware.RequireRole(domain.RoleAdmin, domain.RoleUser)

	r.With(anyRole).Get("/", h.List)
	r.With(anyRole).Post("/", h.Create)
	r.With(anyRole).Get("/{codigo}", h.Get)
	r.With(anyRole).Put("/{codigo}", h.Update)
	r.With(middleware.RequireRole(domain.RoleAdmin)).Delete("/{codigo}", h.Delete)
}

// List handles GET /categorias. The full list is returned unpaginated.
func (h *CategoriaHandler) List(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.categorias.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao listar categorias")
		return
	}
	if categorias == nil {
		categorias = []*domain.Categoria{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categorias)
}

// Get handles GET /categorias/{codigo}.
func (h *CategoriaHandler) Get(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	categoria, err := h.categorias.GetByID(r.Context(), codigo)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao buscar categoria")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categoria)
}

// Create handles POST /categorias.
func (h *CategoriaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.CategoriaInput
	if !decodeBody(w, r, &in) {
		return
	}

	categoria, err := h.categorias.Create(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao criar categoria")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("categoria created", slog.Int64("categoria_codigo", categoria.Codigo))
	w.Header().Set("Location", resourceLocation(r, categoria.Codigo))
	shared.RespondWithJSON(w, r, http.StatusCreated, categoria)
}

// Update handles PUT /categorias/{codigo}.
func (h *CategoriaHandler) Update(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var in domain.CategoriaInput
	if !decodeBody(w, r, &in) {
		return
	}

	categoria, err := h.categorias.Update(r.Context(), codigo, in)
	if err != nil {
		HandleAPIError(w, r, err, "Falha ao atualizar categoria")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categoria)
}

// Delete handles DELETE /categorias/{codigo}.
func (h *CategoriaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	codigo, err := pathCodigo(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.categorias.Delete(r.Context(), codigo); err != nil {
		HandleAPIError(w, r, err, "Falha ao remover categoria")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("categoria deleted", slog.Int64("categoria_codigo", codigo))
	w.WriteHeader(http.StatusNoContent)
}
