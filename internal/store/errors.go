package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInUse is returned when an entity cannot be deleted or changed
	// because other rows still reference it.
	ErrInUse = errors.New("entity is referenced by other entities")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or when the database rejects it with a check/not-null
	// constraint. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrMissingReference is returned when an insert or update points at a
	// row that does not exist (foreign key violation).
	ErrMissingReference = fmt.Errorf("%w: missing reference", ErrInvalidEntity)

	// Entity-specific "not found" errors

	// ErrPessoaNotFound indicates that the requested pessoa does not exist in the store.
	ErrPessoaNotFound = fmt.Errorf("%w: pessoa", ErrNotFound)

	// ErrCategoriaNotFound indicates that the requested categoria does not exist in the store.
	ErrCategoriaNotFound = fmt.Errorf("%w: categoria", ErrNotFound)

	// ErrLancamentoNotFound indicates that the requested lancamento does not exist in the store.
	ErrLancamentoNotFound = fmt.Errorf("%w: lancamento", ErrNotFound)

	// ErrUsuarioNotFound indicates that the requested usuario does not exist in the store.
	ErrUsuarioNotFound = fmt.Errorf("%w: usuario", ErrNotFound)

	// ErrUsernameExists indicates that a usuario with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// Entity-specific errors wrap ErrNotFound, so one check covers them all.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInUseError checks if the error reports a still-referenced entity.
func IsInUseError(err error) bool {
	return errors.Is(err, ErrInUse)
}
