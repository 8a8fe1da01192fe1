// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is normally reached by unwrapping a *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidRole is returned for role names outside ADMIN/USER.
	ErrInvalidRole = errors.New("invalid role")

	// ErrAtivoUnchanged is returned when a pessoa status update would not
	// change the stored value.
	ErrAtivoUnchanged = errors.New("ativo status unchanged")
)
