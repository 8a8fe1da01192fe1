package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/service/auth"
)

// CredentialChecker resolves a username/password pair to a usuario.
type CredentialChecker interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Usuario, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator CredentialChecker
	jwtService    auth.JWTService
	logger        *slog.Logger
	timeFunc      func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator CredentialChecker, jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		jwtService:    jwtService,
		logger:        logger.With(slog.String("component", "auth_handler")),
		timeFunc:      time.Now,
	}
}

// Routes registers the public authentication endpoints.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/login", h.Login)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	usuario, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgCredenciaisInvalidas, err,
				shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Falha ao autenticar usuário")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), usuario)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", err.Error()),
			slog.Int64("usuario_codigo", usuario.Codigo))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Falha ao gerar token de acesso", err)
		return
	}

	log.Info("usuario authenticated", slog.Int64("usuario_codigo", usuario.Codigo))
	shared.RespondWithJSON(w, r, http.StatusOK, loginResponse(token, expiresAt, h.timeFunc()))
}
