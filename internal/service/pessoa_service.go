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

// PessoaService provides pessoa-related operations.
type PessoaService interface {
	// Create validates the input and persists a new pessoa.
	Create(ctx context.Context, in domain.PessoaInput) (*domain.Pessoa, error)

	// GetByID returns the pessoa or ErrNotFound.
	GetByID(ctx context.Context, codigo int64) (*domain.Pessoa, error)

	// List returns a page of pessoas. A nil or blank nome lists every
	// pessoa; otherwise names are matched as case-insensitive substrings.
	List(ctx context.Context, nome *string, page domain.PageRequest) (domain.Page[*domain.Pessoa], error)

	// Update replaces nome and ativo, and the endereco only when the
	// input carries one.
	Update(ctx context.Context, codigo int64, in domain.PessoaInput) (*domain.Pessoa, error)

	// UpdateAtivo sets the active flag. Setting the current value again
	// returns ErrInvalidState.
	UpdateAtivo(ctx context.Context, codigo int64, ativo bool) (*domain.Pessoa, error)

	// Delete removes the pessoa. Returns ErrNotFound when it does not
	// exist and ErrConflict while lancamentos reference it.
	Delete(ctx context.Context, codigo int64) error
}

type pessoaServiceImpl struct {
	db      *sql.DB
	pessoas store.PessoaStore
	logger  *slog.Logger
}

// NewPessoaService creates a new PessoaService.
// It returns an error if any of the required dependencies are nil.
func NewPessoaService(db *sql.DB, pessoas store.PessoaStore, logger *slog.Logger) (PessoaService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if pessoas == nil {
		return nil, fmt.Errorf("pessoa store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &pessoaServiceImpl{
		db:      db,
		pessoas: pessoas,
		logger:  logger.With(slog.String("component", "pessoa_service")),
	}, nil
}

// Create implements PessoaService.Create
func (s *pessoaServiceImpl) Create(ctx context.Context, in domain.PessoaInput) (*domain.Pessoa, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := domain.NewPessoa(in)
	if err != nil {
		log.Debug("pessoa input rejected", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.pessoas.Create(ctx, p); err != nil {
		log.Error("failed to create pessoa", slog.String("error", err.Error()))
		return nil, NewServiceError("create_pessoa", "failed to save pessoa", err)
	}

	log.Info("pessoa created", slog.Int64("pessoa_codigo", p.Codigo))
	return p, nil
}

// GetByID implements PessoaService.GetByID
func (s *pessoaServiceImpl) GetByID(ctx context.Context, codigo int64) (*domain.Pessoa, error) {
	p, err := s.pessoas.GetByID(ctx, codigo)
	if err != nil {
		return nil, s.translate(ctx, "get_pessoa", codigo, err)
	}
	return p, nil
}

// List implements PessoaService.List
func (s *pessoaServiceImpl) List(
	ctx context.Context,
	nome *string,
	page domain.PageRequest,
) (domain.Page[*domain.Pessoa], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filtro := ""
	if nome != nil {
		filtro = *nome
	}

	pessoas, total, err := s.pessoas.List(ctx, filtro, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) {
			return domain.Page[*domain.Pessoa]{}, err
		}
		log.Error("failed to list pessoas",
			slog.String("error", err.Error()),
			slog.String("nome", filtro))
		return domain.Page[*domain.Pessoa]{}, NewServiceError("list_pessoas", "failed to list pessoas", err)
	}

	return domain.NewPage(pessoas, page, total), nil
}

// Update implements PessoaService.Update
func (s *pessoaServiceImpl) Update(
	ctx context.Context,
	codigo int64,
	in domain.PessoaInput,
) (*domain.Pessoa, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.ValidateForUpdate(); err != nil {
		log.Debug("pessoa update input rejected",
			slog.String("error", err.Error()),
			slog.Int64("pessoa_codigo", codigo))
		return nil, err
	}

	var updated *domain.Pessoa
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPessoas := s.pessoas.WithTx(tx)

		p, err := txPessoas.GetByIDForUpdate(ctx, codigo)
		if err != nil {
			return s.translate(ctx, "update_pessoa", codigo, err)
		}

		if err := p.Apply(in); err != nil {
			return err
		}

		if err := txPessoas.Update(ctx, p); err != nil {
			return s.translate(ctx, "update_pessoa", codigo, err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("pessoa updated", slog.Int64("pessoa_codigo", codigo))
	return updated, nil
}

// UpdateAtivo implements PessoaService.UpdateAtivo
// The row stays locked between the read and the write, so of two
// concurrent identical requests only the first succeeds.
func (s *pessoaServiceImpl) UpdateAtivo(ctx context.Context, codigo int64, ativo bool) (*domain.Pessoa, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Pessoa
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPessoas := s.pessoas.WithTx(tx)

		p, err := txPessoas.GetByIDForUpdate(ctx, codigo)
		if err != nil {
			return s.translate(ctx, "update_pessoa_ativo", codigo, err)
		}

		if err := p.SetAtivo(ativo); err != nil {
			if errors.Is(err, domain.ErrAtivoUnchanged) {
				log.Debug("pessoa ativo unchanged",
					slog.Int64("pessoa_codigo", codigo),
					slog.Bool("ativo", ativo))
				return NewServiceError("update_pessoa_ativo",
					fmt.Sprintf(msgStatusAtivoInalterado, ativo), ErrInvalidState)
			}
			return err
		}

		if err := txPessoas.Update(ctx, p); err != nil {
			return s.translate(ctx, "update_pessoa_ativo", codigo, err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("pessoa ativo updated",
		slog.Int64("pessoa_codigo", codigo),
		slog.Bool("ativo", ativo))
	return updated, nil
}

// Delete implements PessoaService.Delete
func (s *pessoaServiceImpl) Delete(ctx context.Context, codigo int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.pessoas.Delete(ctx, codigo); err != nil {
		return s.translate(ctx, "delete_pessoa", codigo, err)
	}

	log.Info("pessoa deleted", slog.Int64("pessoa_codigo", codigo))
	return nil
}

// translate maps store errors to service errors, logging unexpected ones.
func (s *pessoaServiceImpl) translate(ctx context.Context, op string, codigo int64, err error) error {
	var serviceErr *ServiceError
	switch {
	case errors.As(err, &serviceErr):
		return err
	case store.IsNotFoundError(err):
		return NewServiceError(op, msgPessoaNaoEncontrada, ErrNotFound)
	case store.IsInUseError(err):
		return NewServiceError(op, msgPessoaEmUso, ErrConflict)
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("pessoa operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.Int64("pessoa_codigo", codigo))
	return NewServiceError(op, "failed to access pessoa", err)
}
