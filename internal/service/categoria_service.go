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

// CategoriaService provides categoria-related operations.
type CategoriaService interface {
	List(ctx context.Context) ([]*domain.Categoria, error)
	GetByID(ctx context.Context, codigo int64) (*domain.Categoria, error)
	Create(ctx context.Context, in domain.CategoriaInput) (*domain.Categoria, error)
	Update(ctx context.Context, codigo int64, in domain.CategoriaInput) (*domain.Categoria, error)
	Delete(ctx context.Context, codigo int64) error
}

type categoriaServiceImpl struct {
	db         *sql.DB
	categorias store.CategoriaStore
	logger     *slog.Logger
}

// NewCategoriaService creates a new CategoriaService.
// It returns an error if any of the required dependencies are nil.
func NewCategoriaService(db *sql.DB, categorias store.CategoriaStore, logger *slog.Logger) (CategoriaService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if categorias == nil {
		return nil, fmt.Errorf("categoria store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &categoriaServiceImpl{
		db:         db,
		categorias: categorias,
		logger:     logger.With(slog.String("component", "categoria_service")),
	}, nil
}

func (s *categoriaServiceImpl) List(ctx context.Context) ([]*domain.Categoria, error) {
	categorias, err := s.categorias.List(ctx)
	if err != nil {
		return nil, s.translate(ctx, "list_categorias", 0, err)
	}
	return categorias, nil
}

func (s *categoriaServiceImpl) GetByID(ctx context.Context, codigo int64) (*domain.Categoria, error) {
	c, err := s.categorias.GetByID(ctx, codigo)
	if err != nil {
		return nil, s.translate(ctx, "get_categoria", codigo, err)
	}
	return c, nil
}

func (s *categoriaServiceImpl) Create(ctx context.Context, in domain.CategoriaInput) (*domain.Categoria, error) {
	c, err := domain.NewCategoria(in)
	if err != nil {
		return nil, err
	}

	if err := s.categorias.Create(ctx, c); err != nil {
		return nil, s.translate(ctx, "create_categoria", 0, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("categoria created",
		slog.Int64("categoria_codigo", c.Codigo))
	return c, nil
}

func (s *categoriaServiceImpl) Update(
	ctx context.Context,
	codigo int64,
	in domain.CategoriaInput,
) (*domain.Categoria, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Categoria
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCategorias := s.categorias.WithTx(tx)

		c, err := txCategorias.GetByID(ctx, codigo)
		if err != nil {
			return s.translate(ctx, "update_categoria", codigo, err)
		}

		if err := c.Apply(in); err != nil {
			return err
		}

		if err := txCategorias.Update(ctx, c); err != nil {
			return s.translate(ctx, "update_categoria", codigo, err)
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *categoriaServiceImpl) Delete(ctx context.Context, codigo int64) error {
	if err := s.categorias.Delete(ctx, codigo); err != nil {
		return s.translate(ctx, "delete_categoria", codigo, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("categoria deleted",
		slog.Int64("categoria_codigo", codigo))
	return nil
}

func (s *categoriaServiceImpl) translate(ctx context.Context, op string, codigo int64, err error) error {
	var serviceErr *ServiceError
	switch {
	case errors.As(err, &serviceErr):
		return err
	case store.IsNotFoundError(err):
		return NewServiceError(op, msgCategoriaNaoEncontrada, ErrNotFound)
	case store.IsInUseError(err):
		return NewServiceError(op, msgCategoriaEmUso, ErrConflict)
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("categoria operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.Int64("categoria_codigo", codigo))
	return NewServiceError(op, "failed to access categoria", err)
}
