//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/postgres"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"github.com/phrazzld/pagamentos-api/internal/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newPessoa(t *testing.T, ctx context.Context, pessoas store.PessoaStore, nome string, ativo bool) *domain.Pessoa {
	t.Helper()
	p := &domain.Pessoa{
		Nome:  nome,
		Ativo: ativo,
		Endereco: domain.Endereco{
			Logradouro: "Rua do Café, 15",
			Cidade:     "Uberlândia",
			Estado:     "MG",
			Cep:        "38400-121",
		},
	}
	require.NoError(t, pessoas.Create(ctx, p))
	require.NotZero(t, p.Codigo)
	return p
}

func TestPostgresStores_Integration(t *testing.T) {
	db := testdb.Open(t)

	t.Run("pessoa lifecycle", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			pessoas := postgres.NewPostgresPessoaStore(tx, discardLogger)

			p := newPessoa(t, ctx, pessoas, "Integração Silva", true)

			locked, err := pessoas.GetByIDForUpdate(ctx, p.Codigo)
			require.NoError(t, err)
			assert.Equal(t, p.Endereco, locked.Endereco)

			locked.Ativo = false
			require.NoError(t, pessoas.Update(ctx, locked))

			got, err := pessoas.GetByID(ctx, p.Codigo)
			require.NoError(t, err)
			assert.False(t, got.Ativo)

			found, total, err := pessoas.List(ctx, "integração", domain.PageRequest{Page: 0, Size: 10})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, total, int64(1))
			assert.NotEmpty(t, found)

			require.NoError(t, pessoas.Delete(ctx, p.Codigo))
			_, err = pessoas.GetByID(ctx, p.Codigo)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	})

	t.Run("referenced rows cannot be deleted", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			pessoas := postgres.NewPostgresPessoaStore(tx, discardLogger)
			categorias := postgres.NewPostgresCategoriaStore(tx, discardLogger)
			lancamentos := postgres.NewPostgresLancamentoStore(tx, discardLogger)

			p := newPessoa(t, ctx, pessoas, "Referenciada Souza", true)
			c := &domain.Categoria{Nome: "Integração"}
			require.NoError(t, categorias.Create(ctx, c))

			l := &domain.Lancamento{
				Descricao:      "Aluguel integração",
				DataVencimento: domain.NewDate(2025, 7, 5),
				Valor:          decimal.RequireFromString("1500.75"),
				Tipo:           domain.TipoDespesa,
				Categoria:      domain.Categoria{Codigo: c.Codigo},
				Pessoa:         domain.Pessoa{Codigo: p.Codigo},
			}
			require.NoError(t, lancamentos.Create(ctx, l))

			// Savepoints keep the outer test transaction usable after the
			// expected constraint failures.
			_, err := tx.ExecContext(ctx, "SAVEPOINT before_delete_pessoa")
			require.NoError(t, err)
			assert.ErrorIs(t, pessoas.Delete(ctx, p.Codigo), store.ErrInUse)
			_, err = tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT before_delete_pessoa")
			require.NoError(t, err)

			_, err = tx.ExecContext(ctx, "SAVEPOINT before_delete_categoria")
			require.NoError(t, err)
			assert.ErrorIs(t, categorias.Delete(ctx, c.Codigo), store.ErrInUse)
			_, err = tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT before_delete_categoria")
			require.NoError(t, err)

			de := domain.NewDate(2025, 7, 1)
			ate := domain.NewDate(2025, 7, 31)
			filter := domain.LancamentoFilter{Descricao: "ALUGUEL INTEG", DataVencimentoDe: &de, DataVencimentoAte: &ate}

			resumos, total, err := lancamentos.Summarize(ctx, filter, domain.PageRequest{Page: 0, Size: 5})
			require.NoError(t, err)
			require.Equal(t, int64(1), total)
			assert.Equal(t, "Integração", resumos[0].Categoria)
			assert.Equal(t, "Referenciada Souza", resumos[0].Pessoa)
			assert.True(t, resumos[0].Valor.Equal(decimal.RequireFromString("1500.75")))

			require.NoError(t, lancamentos.Delete(ctx, l.Codigo))
			require.NoError(t, pessoas.Delete(ctx, p.Codigo))
		})
	})

	t.Run("usuario round trip", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx := context.Background()
			usuarios := postgres.NewPostgresUsuarioStore(tx, bcrypt.MinCost, discardLogger)

			u, err := domain.NewUsuario("integracao@algamoney.com", "senha-segura", []domain.Role{domain.RoleUser})
			require.NoError(t, err)
			require.NoError(t, usuarios.Create(ctx, u))

			got, err := usuarios.GetByUsername(ctx, "integracao@algamoney.com")
			require.NoError(t, err)
			assert.Equal(t, []domain.Role{domain.RoleUser}, got.Roles)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.HashedPassword), []byte("senha-segura")))
		})
	})
}
