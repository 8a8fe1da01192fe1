package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/store"
)

const lancamentoColumns = `l.codigo, l.descricao, l.data_vencimento, l.data_pagamento, l.valor,
	l.observacao, l.tipo, l.codigo_categoria, l.codigo_pessoa`

const resumoColumns = `l.codigo, l.descricao, l.data_vencimento, l.data_pagamento, l.valor,
	l.tipo, c.nome, p.nome`

var lancamentoSortColumns = map[string]string{
	"codigo":         "l.codigo",
	"descricao":      "lower(l.descricao)",
	"dataVencimento": "l.data_vencimento",
	"dataPagamento":  "l.data_pagamento",
	"valor":          "l.valor",
	"tipo":           "l.tipo",
}

// PostgresLancamentoStore implements the store.LancamentoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLancamentoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLancamentoStore creates a new PostgreSQL implementation of the LancamentoStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresLancamentoStore(db store.DBTX, logger *slog.Logger) *PostgresLancamentoStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLancamentoStore{
		db:     db,
		logger: logger.With(slog.String("component", "lancamento_store")),
	}
}

// Ensure PostgresLancamentoStore implements store.LancamentoStore interface
var _ store.LancamentoStore = (*PostgresLancamentoStore)(nil)

// WithTx implements store.LancamentoStore.WithTx
func (s *PostgresLancamentoStore) WithTx(tx *sql.Tx) store.LancamentoStore {
	return &PostgresLancamentoStore{db: tx, logger: s.logger}
}

// Create implements store.LancamentoStore.Create
func (s *PostgresLancamentoStore) Create(ctx context.Context, l *domain.Lancamento) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO lancamento (descricao, data_vencimento, data_pagamento, valor,
			observacao, tipo, codigo_categoria, codigo_pessoa)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING codigo
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		l.Descricao,
		l.DataVencimento,
		l.DataPagamento,
		l.Valor,
		nullString(l.Observacao),
		string(l.Tipo),
		l.Categoria.Codigo,
		l.Pessoa.Codigo,
	).Scan(&l.Codigo)
	if err != nil {
		log.Error("failed to create lancamento",
			slog.String("error", err.Error()),
			slog.Int64("categoria_codigo", l.Categoria.Codigo),
			slog.Int64("pessoa_codigo", l.Pessoa.Codigo))
		return MapError(err)
	}

	log.Info("lancamento created successfully",
		slog.Int64("lancamento_codigo", l.Codigo),
		slog.String("tipo", string(l.Tipo)))
	return nil
}

// GetByID implements store.LancamentoStore.GetByID
func (s *PostgresLancamentoStore) GetByID(ctx context.Context, codigo int64) (*domain.Lancamento, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + lancamentoColumns + ` FROM lancamento l WHERE l.codigo = $1`

	l, err := scanLancamento(s.db.QueryRowContext(ctx, query, codigo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("lancamento not found", slog.Int64("lancamento_codigo", codigo))
			return nil, store.ErrLancamentoNotFound
		}
		log.Error("failed to get lancamento by codigo",
			slog.String("error", err.Error()),
			slog.Int64("lancamento_codigo", codigo))
		return nil, MapError(err)
	}

	return l, nil
}

// Search implements store.LancamentoStore.Search
func (s *PostgresLancamentoStore) Search(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) ([]*domain.Lancamento, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where := lancamentoWhere(filter)
	order, err := orderBy(page.Sort, lancamentoSortColumns, "l.codigo ASC")
	if err != nil {
		return nil, 0, err
	}

	total, err := s.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	limit, args := where.limitOffset(page)
	query := `SELECT ` + lancamentoColumns + ` FROM lancamento l` + where.sql() + order + limit

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to search lancamentos", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	lancamentos := []*domain.Lancamento{}
	for rows.Next() {
		l, err := scanLancamento(rows)
		if err != nil {
			log.Error("failed to scan lancamento row", slog.String("error", err.Error()))
			return nil, 0, err
		}
		lancamentos = append(lancamentos, l)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	log.Debug("searched lancamentos",
		slog.Int("count", len(lancamentos)),
		slog.Int64("total", total))
	return lancamentos, total, nil
}

// Summarize implements store.LancamentoStore.Summarize
func (s *PostgresLancamentoStore) Summarize(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) ([]*domain.ResumoLancamento, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where := lancamentoWhere(filter)
	order, err := orderBy(page.Sort, lancamentoSortColumns, "l.codigo ASC")
	if err != nil {
		return nil, 0, err
	}

	total, err := s.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	limit, args := where.limitOffset(page)
	query := `SELECT ` + resumoColumns + `
		FROM lancamento l
		JOIN categoria c ON c.codigo = l.codigo_categoria
		JOIN pessoa p ON p.codigo = l.codigo_pessoa` + where.sql() + order + limit

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to summarize lancamentos", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	resumos := []*domain.ResumoLancamento{}
	for rows.Next() {
		var (
			r         domain.ResumoLancamento
			pagamento sql.Null[domain.Date]
			tipo      string
		)
		err := rows.Scan(
			&r.Codigo,
			&r.Descricao,
			&r.DataVencimento,
			&pagamento,
			&r.Valor,
			&tipo,
			&r.Categoria,
			&r.Pessoa,
		)
		if err != nil {
			log.Error("failed to scan resumo row", slog.String("error", err.Error()))
			return nil, 0, err
		}
		r.Tipo = domain.TipoLancamento(tipo)
		if pagamento.Valid {
			r.DataPagamento = &pagamento.V
		}
		resumos = append(resumos, &r)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	return resumos, total, nil
}

// Update implements store.LancamentoStore.Update
func (s *PostgresLancamentoStore) Update(ctx context.Context, l *domain.Lancamento) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE lancamento
		SET descricao = $1, data_vencimento = $2, data_pagamento = $3, valor = $4,
			observacao = $5, tipo = $6, codigo_categoria = $7, codigo_pessoa = $8
		WHERE codigo = $9
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		l.Descricao,
		l.DataVencimento,
		l.DataPagamento,
		l.Valor,
		nullString(l.Observacao),
		string(l.Tipo),
		l.Categoria.Codigo,
		l.Pessoa.Codigo,
		l.Codigo,
	)
	if err != nil {
		log.Error("failed to update lancamento",
			slog.String("error", err.Error()),
			slog.Int64("lancamento_codigo", l.Codigo))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrLancamentoNotFound); err != nil {
		return err
	}

	log.Info("lancamento updated successfully", slog.Int64("lancamento_codigo", l.Codigo))
	return nil
}

// Delete implements store.LancamentoStore.Delete
func (s *PostgresLancamentoStore) Delete(ctx context.Context, codigo int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM lancamento WHERE codigo = $1`, codigo)
	if err != nil {
		log.Error("failed to delete lancamento",
			slog.String("error", err.Error()),
			slog.Int64("lancamento_codigo", codigo))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrLancamentoNotFound); err != nil {
		return err
	}

	log.Info("lancamento deleted successfully", slog.Int64("lancamento_codigo", codigo))
	return nil
}

func (s *PostgresLancamentoStore) count(ctx context.Context, where whereBuilder) (int64, error) {
	var total int64
	query := `SELECT COUNT(*) FROM lancamento l` + where.sql()
	if err := s.db.QueryRowContext(ctx, query, where.args...).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count lancamentos",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return total, nil
}

func lancamentoWhere(filter domain.LancamentoFilter) whereBuilder {
	var where whereBuilder
	if d := strings.TrimSpace(filter.Descricao); d != "" {
		where.add(`l.descricao ILIKE ?`, containsPattern(d))
	}
	if filter.DataVencimentoDe != nil {
		where.add(`l.data_vencimento >= ?`, *filter.DataVencimentoDe)
	}
	if filter.DataVencimentoAte != nil {
		where.add(`l.data_vencimento <= ?`, *filter.DataVencimentoAte)
	}
	return where
}

func scanLancamento(row rowScanner) (*domain.Lancamento, error) {
	var (
		l          domain.Lancamento
		pagamento  sql.Null[domain.Date]
		observacao sql.NullString
		tipo       string
	)
	err := row.Scan(
		&l.Codigo,
		&l.Descricao,
		&l.DataVencimento,
		&pagamento,
		&l.Valor,
		&observacao,
		&tipo,
		&l.Categoria.Codigo,
		&l.Pessoa.Codigo,
	)
	if err != nil {
		return nil, err
	}

	l.Tipo = domain.TipoLancamento(tipo)
	l.Observacao = observacao.String
	if pagamento.Valid {
		l.DataPagamento = &pagamento.V
	}
	return &l, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
