package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// PessoaStore defines the interface for pessoa data persistence.
type PessoaStore interface {
	// Create inserts a new pessoa and sets its Codigo.
	Create(ctx context.Context, p *domain.Pessoa) error

	// GetByID retrieves a pessoa by its codigo.
	// Returns ErrPessoaNotFound if the pessoa does not exist.
	GetByID(ctx context.Context, codigo int64) (*domain.Pessoa, error)

	// GetByIDForUpdate behaves like GetByID but locks the row until the
	// surrounding transaction ends. It must be called on a store bound
	// with WithTx.
	GetByIDForUpdate(ctx context.Context, codigo int64) (*domain.Pessoa, error)

	// List returns one page of pessoas whose name contains nome
	// (case-insensitive), plus the total number of matches. A blank nome
	// matches every pessoa.
	List(ctx context.Context, nome string, page domain.PageRequest) ([]*domain.Pessoa, int64, error)

	// Update writes every column of p.
	// Returns ErrPessoaNotFound if the pessoa does not exist.
	Update(ctx context.Context, p *domain.Pessoa) error

	// Delete removes a pessoa by its codigo.
	// Returns ErrPessoaNotFound if the pessoa does not exist and ErrInUse
	// if lancamentos still reference it.
	Delete(ctx context.Context, codigo int64) error

	// WithTx returns a new PessoaStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PessoaStore
}
