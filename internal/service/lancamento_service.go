package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/store"
)

// LancamentoService provides lancamento-related operations.
type LancamentoService interface {
	// Create validates the input, checks that the referenced categoria exists
	// and that the referenced pessoa exists and is active, then persists.
	Create(ctx context.Context, in domain.LancamentoInput) (*domain.Lancamento, error)

	// GetByID returns the lancamento with its categoria and pessoa loaded.
	GetByID(ctx context.Context, codigo int64) (*domain.Lancamento, error)

	// Update replaces every writable field of the lancamento.
	Update(ctx context.Context, codigo int64, in domain.LancamentoInput) (*domain.Lancamento, error)

	// Delete removes the lancamento or returns ErrNotFound.
	Delete(ctx context.Context, codigo int64) error

	// Search returns a page of full lancamentos matching the filter.
	Search(ctx context.Context, filter domain.LancamentoFilter, page domain.PageRequest) (domain.Page[*domain.Lancamento], error)

	// Summarize returns a page of reduced lancamento projections.
	Summarize(ctx context.Context, filter domain.LancamentoFilter, page domain.PageRequest) (domain.Page[*domain.ResumoLancamento], error)
}

type lancamentoServiceImpl struct {
	db          *sql.DB
	lancamentos store.LancamentoStore
	categorias  store.CategoriaStore
	pessoas     store.PessoaStore
	logger      *slog.Logger
}

// NewLancamentoService creates a new LancamentoService.
// It returns an error if any of the required dependencies are nil.
func NewLancamentoService(
	db *sql.DB,
	lancamentos store.LancamentoStore,
	categorias store.CategoriaStore,
	pessoas store.PessoaStore,
	logger *slog.Logger,
) (LancamentoService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if lancamentos == nil {
		return nil, fmt.Errorf("lancamento store cannot be nil")
	}
	if categorias == nil {
		return nil, fmt.Errorf("categoria store cannot be nil")
	}
	if pessoas == nil {
		return nil, fmt.Errorf("pessoa store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &lancamentoServiceImpl{
		db:          db,
		lancamentos: lancamentos,
		categorias:  categorias,
		pessoas:     pessoas,
		logger:      logger.With(slog.String("component", "lancamento_service")),
	}, nil
}

// Create implements LancamentoService.Create
func (s *lancamentoServiceImpl) Create(ctx context.Context, in domain.LancamentoInput) (*domain.Lancamento, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	l, err := domain.NewLancamento(in)
	if err != nil {
		log.Debug("lancamento input rejected", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		categoria, pessoa, err := s.resolveRefs(ctx, tx, in)
		if err != nil {
			return err
		}

		if err := s.lancamentos.WithTx(tx).Create(ctx, l); err != nil {
			return s.translate(ctx, "create_lancamento", 0, err)
		}

		l.Categoria = *categoria
		l.Pessoa = *pessoa
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("lancamento created",
		slog.Int64("lancamento_codigo", l.Codigo),
		slog.String("tipo", string(l.Tipo)))
	return l, nil
}

// GetByID implements LancamentoService.GetByID
func (s *lancamentoServiceImpl) GetByID(ctx context.Context, codigo int64) (*domain.Lancamento, error) {
	l, err := s.lancamentos.GetByID(ctx, codigo)
	if err != nil {
		return nil, s.translate(ctx, "get_lancamento", codigo, err)
	}

	if err := s.hydrate(ctx, []*domain.Lancamento{l}); err != nil {
		return nil, NewServiceError("get_lancamento", "failed to load lancamento references", err)
	}
	return l, nil
}

// Update implements LancamentoService.Update
func (s *lancamentoServiceImpl) Update(
	ctx context.Context,
	codigo int64,
	in domain.LancamentoInput,
) (*domain.Lancamento, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		log.Debug("lancamento update input rejected",
			slog.String("error", err.Error()),
			slog.Int64("lancamento_codigo", codigo))
		return nil, err
	}

	var updated *domain.Lancamento
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txLancamentos := s.lancamentos.WithTx(tx)

		l, err := txLancamentos.GetByID(ctx, codigo)
		if err != nil {
			return s.translate(ctx, "update_lancamento", codigo, err)
		}

		categoria, pessoa, err := s.resolveRefs(ctx, tx, in)
		if err != nil {
			return err
		}

		if err := l.Apply(in); err != nil {
			return err
		}

		if err := txLancamentos.Update(ctx, l); err != nil {
			return s.translate(ctx, "update_lancamento", codigo, err)
		}

		l.Categoria = *categoria
		l.Pessoa = *pessoa
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("lancamento updated", slog.Int64("lancamento_codigo", codigo))
	return updated, nil
}

// Delete implements LancamentoService.Delete
func (s *lancamentoServiceImpl) Delete(ctx context.Context, codigo int64) error {
	if err := s.lancamentos.Delete(ctx, codigo); err != nil {
		return s.translate(ctx, "delete_lancamento", codigo, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("lancamento deleted",
		slog.Int64("lancamento_codigo", codigo))
	return nil
}

// Search implements LancamentoService.Search
func (s *lancamentoServiceImpl) Search(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) (domain.Page[*domain.Lancamento], error) {
	lancamentos, total, err := s.lancamentos.Search(ctx, filter, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) {
			return domain.Page[*domain.Lancamento]{}, err
		}
		return domain.Page[*domain.Lancamento]{}, s.translate(ctx, "search_lancamentos", 0, err)
	}

	if err := s.hydrate(ctx, lancamentos); err != nil {
		return domain.Page[*domain.Lancamento]{}, NewServiceError("search_lancamentos",
			"failed to load lancamento references", err)
	}

	return domain.NewPage(lancamentos, page, total), nil
}

// Summarize implements LancamentoService.Summarize
func (s *lancamentoServiceImpl) Summarize(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) (domain.Page[*domain.ResumoLancamento], error) {
	resumos, total, err := s.lancamentos.Summarize(ctx, filter, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) {
			return domain.Page[*domain.ResumoLancamento]{}, err
		}
		return domain.Page[*domain.ResumoLancamento]{}, s.translate(ctx, "summarize_lancamentos", 0, err)
	}

	return domain.NewPage(resumos, page, total), nil
}

// resolveRefs loads the categoria and pessoa named by the input inside tx.
// Missing references and inactive pessoas are reported as validation errors.
func (s *lancamentoServiceImpl) resolveRefs(
	ctx context.Context,
	tx *sql.Tx,
	in domain.LancamentoInput,
) (*domain.Categoria, *domain.Pessoa, error) {
	categoria, err := s.categorias.WithTx(tx).GetByID(ctx, in.Categoria.Codigo)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, nil, domain.NewValidationError("categoria.codigo", msgCategoriaInexistente)
		}
		return nil, nil, s.translate(ctx, "resolve_categoria", in.Categoria.Codigo, err)
	}

	pessoa, err := s.pessoas.WithTx(tx).GetByID(ctx, in.Pessoa.Codigo)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, nil, domain.NewValidationError("pessoa.codigo", msgPessoaInexistente)
		}
		return nil, nil, s.translate(ctx, "resolve_pessoa", in.Pessoa.Codigo, err)
	}
	if pessoa.IsInativo() {
		return nil, nil, domain.NewValidationError("pessoa.codigo", msgPessoaInexistente)
	}

	return categoria, pessoa, nil
}

// hydrate replaces the codigo-only categoria and pessoa of each lancamento
// with the stored records. Each distinct reference is fetched once.
func (s *lancamentoServiceImpl) hydrate(ctx context.Context, lancamentos []*domain.Lancamento) error {
	categorias := make(map[int64]*domain.Categoria)
	pessoas := make(map[int64]*domain.Pessoa)

	for _, l := range lancamentos {
		c, ok := categorias[l.Categoria.Codigo]
		if !ok {
			var err error
			c, err = s.categorias.GetByID(ctx, l.Categoria.Codigo)
			if err != nil {
				return fmt.Errorf("categoria %d: %w", l.Categoria.Codigo, err)
			}
			categorias[l.Categoria.Codigo] = c
		}
		l.Categoria = *c

		p, ok := pessoas[l.Pessoa.Codigo]
		if !ok {
			var err error
			p, err = s.pessoas.GetByID(ctx, l.Pessoa.Codigo)
			if err != nil {
				return fmt.Errorf("pessoa %d: %w", l.Pessoa.Codigo, err)
			}
			pessoas[l.Pessoa.Codigo] = p
		}
		l.Pessoa = *p
	}

	return nil
}

func (s *lancamentoServiceImpl) translate(ctx context.Context, op string, codigo int64, err error) error {
	var serviceErr *ServiceError
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &serviceErr), errors.As(err, &validationErr):
		return err
	case store.IsNotFoundError(err):
		return NewServiceError(op, msgLancamentoNaoEncontrado, ErrNotFound)
	case store.IsInUseError(err):
		return NewServiceError(op, "Lançamento em uso e não pode ser removido", ErrConflict)
	case errors.Is(err, store.ErrMissingReference):
		return domain.NewValidationError("lancamento", msgReferenciaInexistente)
	case errors.Is(err, store.ErrInvalidEntity):
		return domain.NewValidationError("lancamento", msgLancamentoRejeitado)
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("lancamento operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.Int64("codigo", codigo))
	return NewServiceError(op, "failed to access lancamento", err)
}
