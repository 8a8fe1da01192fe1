package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// LancamentoStore defines the interface for lancamento data persistence.
//
// Lancamentos returned by this store carry only the Codigo of their
// Categoria and Pessoa.
type LancamentoStore interface {
	// Create inserts a new lancamento and sets its Codigo.
	// Returns ErrMissingReference if a referenced categoria or pessoa is missing.
	Create(ctx context.Context, l *domain.Lancamento) error

	// GetByID retrieves a lancamento by its codigo.
	// Returns ErrLancamentoNotFound if the lancamento does not exist.
	GetByID(ctx context.Context, codigo int64) (*domain.Lancamento, error)

	// Search returns one page of lancamentos matching filter and the total
	// number of matches.
	Search(ctx context.Context, filter domain.LancamentoFilter, page domain.PageRequest) ([]*domain.Lancamento, int64, error)

	// Summarize is Search with the reduced projection, joining categoria
	// and pessoa names in the same query.
	Summarize(ctx context.Context, filter domain.LancamentoFilter, page domain.PageRequest) ([]*domain.ResumoLancamento, int64, error)

	// Update writes every column of l.
	// Returns ErrLancamentoNotFound if the lancamento does not exist.
	Update(ctx context.Context, l *domain.Lancamento) error

	// Delete removes a lancamento by its codigo.
	// Returns ErrLancamentoNotFound if the lancamento does not exist.
	Delete(ctx context.Context, codigo int64) error

	// WithTx returns a new LancamentoStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LancamentoStore
}
