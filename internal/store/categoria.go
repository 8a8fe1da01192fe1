package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// CategoriaStore defines the interface for categoria data persistence.
type CategoriaStore interface {
	// Create inserts a new categoria and sets its Codigo.
	Create(ctx context.Context, c *domain.Categoria) error

	// GetByID retrieves a categoria by its codigo.
	// Returns ErrCategoriaNotFound if the categoria does not exist.
	GetByID(ctx context.Context, codigo int64) (*domain.Categoria, error)

	// List returns every categoria ordered by codigo.
	List(ctx context.Context) ([]*domain.Categoria, error)

	// Update writes the name of c.
	// Returns ErrCategoriaNotFound if the categoria does not exist.
	Update(ctx context.Context, c *domain.Categoria) error

	// Delete removes a categoria by its codigo.
	// Returns ErrCategoriaNotFound if the categoria does not exist and
	// ErrInUse if lancamentos still reference it.
	Delete(ctx context.Context, codigo int64) error

	// WithTx returns a new CategoriaStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CategoriaStore
}
