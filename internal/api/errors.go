package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/pagamentos-api/internal/api/shared"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/service"
	"github.com/phrazzld/pagamentos-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Service errors
// already carry a client-safe message; everything else falls back to a
// generic text per status class.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgErroInesperado
	}

	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" &&
		(errors.Is(err, service.ErrNotFound) ||
			errors.Is(err, service.ErrConflict) ||
			errors.Is(err, service.ErrInvalidState)) {
		return svcErr.Message
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return msgCredenciaisInvalidas
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, shared.ErrEmptyBody):
		return msgCorpoAusente
	case errors.Is(err, domain.ErrInvalidFormat):
		return msgFormatoInvalido
	case errors.Is(err, service.ErrNotFound):
		return "Recurso não encontrado"
	case errors.Is(err, service.ErrConflict):
		return "Recurso em uso"
	case errors.Is(err, service.ErrInvalidState):
		return "Operação não permitida no estado atual"
	default:
		return msgErroInesperado
	}
}

// HandleAPIError writes the response for err. Validation errors list their
// fields; every other error gets the safe message for its status. For 500s
// defaultMsg, when set, replaces the generic text.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr)
		return
	}

	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err, opts...)
}

const (
	msgErroInesperado       = "Ocorreu um erro inesperado"
	msgCredenciaisInvalidas = "Usuário ou senha inválidos"
	msgCorpoAusente         = "Corpo da requisição ausente"
	msgFormatoInvalido      = "Requisição em formato inválido"
)
