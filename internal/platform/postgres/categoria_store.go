package postgres

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

// PostgresCategoriaStore implements the store.CategoriaStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoriaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoriaStore creates a new PostgreSQL implementation of the CategoriaStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoriaStore(db store.DBTX, logger *slog.Logger) *PostgresCategoriaStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoriaStore{
		db:     db,
		logger: logger.With(slog.String("component", "categoria_store")),
	}
}

// Ensure PostgresCategoriaStore implements store.CategoriaStore interface
var _ store.CategoriaStore = (*PostgresCategoriaStore)(nil)

// WithTx implements store.CategoriaStore.WithTx
func (s *PostgresCategoriaStore) WithTx(tx *sql.Tx) store.CategoriaStore {
	return &PostgresCategoriaStore{db: tx, logger: s.logger}
}

// Create implements store.CategoriaStore.Create
func (s *PostgresCategoriaStore) Create(ctx context.Context, c *domain.Categoria) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO categoria (nome) VALUES ($1) RETURNING codigo`,
		c.Nome,
	).Scan(&c.Codigo)
	if err != nil {
		log.Error("failed to create categoria",
			slog.String("error", err.Error()),
			slog.String("nome", c.Nome))
		return MapError(err)
	}

	log.Info("categoria created successfully", slog.Int64("categoria_codigo", c.Codigo))
	return nil
}

// GetByID implements store.CategoriaStore.GetByID
func (s *PostgresCategoriaStore) GetByID(ctx context.Context, codigo int64) (*domain.Categoria, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Categoria
	err := s.db.QueryRowContext(ctx,
		`SELECT codigo, nome FROM categoria WHERE codigo = $1`,
		codigo,
	).Scan(&c.Codigo, &c.Nome)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("categoria not found", slog.Int64("categoria_codigo", codigo))
			return nil, store.ErrCategoriaNotFound
		}
		log.Error("failed to get categoria by codigo",
			slog.String("error", err.Error()),
			slog.Int64("categoria_codigo", codigo))
		return nil, MapError(err)
	}

	return &c, nil
}

// List implements store.CategoriaStore.List
func (s *PostgresCategoriaStore) List(ctx context.Context) ([]*domain.Categoria, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT codigo, nome FROM categoria ORDER BY codigo`)
	if err != nil {
		log.Error("failed to query categorias", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	categorias := []*domain.Categoria{}
	for rows.Next() {
		var c domain.Categoria
		if err := rows.Scan(&c.Codigo, &c.Nome); err != nil {
			log.Error("failed to scan categoria row", slog.String("error", err.Error()))
			return nil, err
		}
		categorias = append(categorias, &c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return categorias, nil
}

// Update implements store.CategoriaStore.Update
func (s *PostgresCategoriaStore) Update(ctx context.Context, c *domain.Categoria) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE categoria SET nome = $1 WHERE codigo = $2`,
		c.Nome,
		c.Codigo,
	)
	if err != nil {
		log.Error("failed to update categoria",
			slog.String("error", err.Error()),
			slog.Int64("categoria_codigo", c.Codigo))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoriaNotFound); err != nil {
		return err
	}

	log.Info("categoria updated successfully", slog.Int64("categoria_codigo", c.Codigo))
	return nil
}

// Delete implements store.CategoriaStore.Delete
func (s *PostgresCategoriaStore) Delete(ctx context.Context, codigo int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM categoria WHERE codigo = $1`, codigo)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("categoria still referenced by lancamentos",
				slog.Int64("categoria_codigo", codigo))
			return fmt.Errorf("%w: categoria %d", store.ErrInUse, codigo)
		}
		log.Error("failed to delete categoria",
			slog.String("error", err.Error()),
			slog.Int64("categoria_codigo", codigo))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoriaNotFound); err != nil {
		return err
	}

	log.Info("categoria deleted successfully", slog.Int64("categoria_codigo", codigo))
	return nil
}
