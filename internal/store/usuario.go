package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// UsuarioStore defines the interface for usuario data persistence.
type UsuarioStore interface {
	// Create saves a new usuario with its roles.
	// It handles domain validation and password hashing internally.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, u *domain.Usuario) error

	// GetByUsername retrieves a usuario and its roles by username.
	// Returns ErrUsuarioNotFound if the usuario does not exist.
	// The returned usuario contains the password hash but never the plaintext.
	GetByUsername(ctx context.Context, username string) (*domain.Usuario, error)

	// WithTx returns a new UsuarioStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UsuarioStore
}
