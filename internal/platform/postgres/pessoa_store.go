package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/store"
)

const pessoaColumns = `codigo, nome, ativo, logradouro, cidade, estado, cep`

var pessoaSortColumns = map[string]string{
	"codigo": "codigo",
	"nome":   "lower(nome)",
	"ativo":  "ativo",
}

// PostgresPessoaStore implements the store.PessoaStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPessoaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPessoaStore creates a new PostgreSQL implementation of the PessoaStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPessoaStore(db store.DBTX, logger *slog.Logger) *PostgresPessoaStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPessoaStore{
		db:     db,
		logger: logger.With(slog.String("component", "pessoa_store")),
	}
}

// Ensure PostgresPessoaStore implements store.PessoaStore interface
var _ store.PessoaStore = (*PostgresPessoaStore)(nil)

// WithTx implements store.PessoaStore.WithTx
func (s *PostgresPessoaStore) WithTx(tx *sql.Tx) store.PessoaStore {
	return &PostgresPessoaStore{db: tx, logger: s.logger}
}

// Create implements store.PessoaStore.Create
func (s *PostgresPessoaStore) Create(ctx context.Context, p *domain.Pessoa) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO pessoa (nome, ativo, logradouro, cidade, estado, cep)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING codigo
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		p.Nome,
		p.Ativo,
		p.Endereco.Logradouro,
		p.Endereco.Cidade,
		p.Endereco.Estado,
		p.Endereco.Cep,
	).Scan(&p.Codigo)
	if err != nil {
		log.Error("failed to create pessoa",
			slog.String("error", err.Error()),
			slog.String("nome", p.Nome))
		return MapError(err)
	}

	log.Info("pessoa created successfully",
		slog.Int64("pessoa_codigo", p.Codigo))
	return nil
}

// GetByID implements store.PessoaStore.GetByID
func (s *PostgresPessoaStore) GetByID(ctx context.Context, codigo int64) (*domain.Pessoa, error) {
	return s.get(ctx, codigo, false)
}

// GetByIDForUpdate implements store.PessoaStore.GetByIDForUpdate
func (s *PostgresPessoaStore) GetByIDForUpdate(ctx context.Context, codigo int64) (*domain.Pessoa, error) {
	return s.get(ctx, codigo, true)
}

func (s *PostgresPessoaStore) get(ctx context.Context, codigo int64, lock bool) (*domain.Pessoa, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving pessoa by codigo",
		slog.Int64("pessoa_codigo", codigo),
		slog.Bool("for_update", lock))

	query := `SELECT ` + pessoaColumns + ` FROM pessoa WHERE codigo = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	p, err := scanPessoa(s.db.QueryRowContext(ctx, query, codigo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("pessoa not found", slog.Int64("pessoa_codigo", codigo))
			return nil, store.ErrPessoaNotFound
		}
		log.Error("failed to get pessoa by codigo",
			slog.String("error", err.Error()),
			slog.Int64("pessoa_codigo", codigo))
		return nil, MapError(err)
	}

	return p, nil
}

// List implements store.PessoaStore.List
func (s *PostgresPessoaStore) List(
	ctx context.Context,
	nome string,
	page domain.PageRequest,
) ([]*domain.Pessoa, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var where whereBuilder
	if nome = strings.TrimSpace(nome); nome != "" {
		where.add(`nome ILIKE ?`, containsPattern(nome))
	}

	order, err := orderBy(page.Sort, pessoaSortColumns, "codigo ASC")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM pessoa` + where.sql()
	if err := s.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		log.Error("failed to count pessoas",
			slog.String("error", err.Error()),
			slog.String("nome", nome))
		return nil, 0, MapError(err)
	}

	limit, args := where.limitOffset(page)
	query := `SELECT ` + pessoaColumns + ` FROM pessoa` + where.sql() + order + limit

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query pessoas",
			slog.String("error", err.Error()),
			slog.String("nome", nome))
		return nil, 0, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	pessoas := []*domain.Pessoa{}
	for rows.Next() {
		p, err := scanPessoa(rows)
		if err != nil {
			log.Error("failed to scan pessoa row",
				slog.String("error", err.Error()))
			return nil, 0, err
		}
		pessoas = append(pessoas, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, 0, err
	}

	log.Debug("listed pessoas",
		slog.String("nome", nome),
		slog.Int("count", len(pessoas)),
		slog.Int64("total", total))
	return pessoas, total, nil
}

// Update implements store.PessoaStore.Update
func (s *PostgresPessoaStore) Update(ctx context.Context, p *domain.Pessoa) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE pessoa
		SET nome = $1, ativo = $2, logradouro = $3, cidade = $4, estado = $5, cep = $6
		WHERE codigo = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		p.Nome,
		p.Ativo,
		p.Endereco.Logradouro,
		p.Endereco.Cidade,
		p.Endereco.Estado,
		p.Endereco.Cep,
		p.Codigo,
	)
	if err != nil {
		log.Error("failed to update pessoa",
			slog.String("error", err.Error()),
			slog.Int64("pessoa_codigo", p.Codigo))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPessoaNotFound); err != nil {
		log.Debug("pessoa not updated",
			slog.String("reason", err.Error()),
			slog.Int64("pessoa_codigo", p.Codigo))
		return err
	}

	log.Info("pessoa updated successfully",
		slog.Int64("pessoa_codigo", p.Codigo),
		slog.Bool("ativo", p.Ativo))
	return nil
}

// Delete implements store.PessoaStore.Delete
func (s *PostgresPessoaStore) Delete(ctx context.Context, codigo int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM pessoa WHERE codigo = $1`, codigo)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("pessoa still referenced by lancamentos",
				slog.Int64("pessoa_codigo", codigo))
			return fmt.Errorf("%w: pessoa %d", store.ErrInUse, codigo)
		}
		log.Error("failed to delete pessoa",
			slog.String("error", err.Error()),
			slog.Int64("pessoa_codigo", codigo))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPessoaNotFound); err != nil {
		return err
	}

	log.Info("pessoa deleted successfully", slog.Int64("pessoa_codigo", codigo))
	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPessoa(row rowScanner) (*domain.Pessoa, error) {
	var p domain.Pessoa
	err := row.Scan(
		&p.Codigo,
		&p.Nome,
		&p.Ativo,
		&p.Endereco.Logradouro,
		&p.Endereco.Cidade,
		&p.Endereco.Estado,
		&p.Endereco.Cep,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
