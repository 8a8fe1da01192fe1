package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUsuarioStore is a mock of store.UsuarioStore interface for use with testify/mock
type TestifyMockUsuarioStore struct {
	mock.Mock
}

// Create is a mock implementation of store.UsuarioStore.Create
func (m *TestifyMockUsuarioStore) Create(ctx context.Context, u *domain.Usuario) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// GetByUsername is a mock implementation of store.UsuarioStore.GetByUsername
func (m *TestifyMockUsuarioStore) GetByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*domain.Usuario); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself.
func (m *TestifyMockUsuarioStore) WithTx(tx *sql.Tx) store.UsuarioStore {
	return m
}
