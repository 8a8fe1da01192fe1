package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPostgresUsuarioStore_Create(t *testing.T) {
	t.Run("hashes password and stores roles", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUsuarioStore(db, bcrypt.MinCost, nil)
		u, err := domain.NewUsuario("admin", "admin-password", []domain.Role{domain.RoleAdmin, domain.RoleUser})
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO usuario").
			WithArgs("admin", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"codigo"}).AddRow(int64(1)))
		mock.ExpectExec("INSERT INTO usuario_role").WithArgs(int64(1), "ADMIN").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO usuario_role").WithArgs(int64(1), "USER").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), u))
		assert.Equal(t, int64(1), u.Codigo)
		assert.Empty(t, u.Password, "plaintext must be cleared")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("admin-password")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUsuarioStore(db, bcrypt.MinCost, nil)
		u, err := domain.NewUsuario("admin", "admin-password", []domain.Role{domain.RoleAdmin})
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO usuario").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "usuario_username_key"})

		err = s.Create(context.Background(), u)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("invalid usuario", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUsuarioStore(db, bcrypt.MinCost, nil)

		err := s.Create(context.Background(), &domain.Usuario{Username: "x", Password: "12345678"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorContains(t, err, domain.ErrNoRoles.Error())
	})
}

func TestPostgresUsuarioStore_GetByUsername(t *testing.T) {
	t.Run("with roles", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUsuarioStore(db, 0, nil)

		mock.ExpectQuery("FROM usuario u").
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"codigo", "username", "hashed_password", "roles"}).
				AddRow(int64(1), "admin", "$2a$10$hash", "ADMIN,USER"))

		u, err := s.GetByUsername(context.Background(), "admin")

		require.NoError(t, err)
		assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleUser}, u.Roles)
		assert.Equal(t, "$2a$10$hash", u.HashedPassword)
	})

	t.Run("without roles", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUsuarioStore(db, 0, nil)

		mock.ExpectQuery("FROM usuario u").
			WillReturnRows(sqlmock.NewRows([]string{"codigo", "username", "hashed_password", "roles"}).
				AddRow(int64(2), "viewer", "$2a$10$hash", ""))

		u, err := s.GetByUsername(context.Background(), "viewer")

		require.NoError(t, err)
		assert.Empty(t, u.Roles)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUsuarioStore(db, 0, nil)

		mock.ExpectQuery("FROM usuario u").WillReturnError(sql.ErrNoRows)

		_, err := s.GetByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, store.ErrUsuarioNotFound)
	})
}
