// Package service provides application-level services for managing pessoas,
// categorias and lancamentos.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError with the failed operation
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
// 5. Validation failures are returned as *domain.ValidationError unchanged
var (
	// ErrNotFound indicates the requested entity does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates the entity cannot be removed because other
	// entities still reference it.
	// API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("resource in use")

	// ErrInvalidState indicates the requested state change is not allowed
	// from the current state, e.g. activating an already active pessoa.
	// API layer should map this to HTTP 409 Conflict.
	ErrInvalidState = errors.New("invalid state transition")
)

// ServiceError is a custom error type for service errors. Message is safe
// to show to API clients; Err carries the sentinel or underlying cause.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// User-facing messages.
const (
	msgPessoaNaoEncontrada     = "Pessoa não encontrada"
	msgCategoriaNaoEncontrada  = "Categoria não encontrada!"
	msgLancamentoNaoEncontrado = "Lançamento não encontrado"
	msgPessoaEmUso             = "Pessoa em uso e não pode ser removida"
	msgCategoriaEmUso          = "Categoria em uso e não pode ser removida."
	msgPessoaInexistente       = "Pessoa inexistente ou inativa"
	msgCategoriaInexistente    = "Categoria inexistente"
	msgReferenciaInexistente   = "Categoria ou pessoa inexistente"
	msgLancamentoRejeitado     = "Lançamento com valores fora dos limites permitidos"
	msgStatusAtivoInalterado   = "O status 'ativo' já está definido como %t."
)
