package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockCategoriaStore is a mock of store.CategoriaStore interface for use with testify/mock
type TestifyMockCategoriaStore struct {
	mock.Mock
}

// Create is a mock implementation of store.CategoriaStore.Create
func (m *TestifyMockCategoriaStore) Create(ctx context.Context, c *domain.Categoria) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// GetByID is a mock implementation of store.CategoriaStore.GetByID
func (m *TestifyMockCategoriaStore) GetByID(ctx context.Context, codigo int64) (*domain.Categoria, error) {
	args := m.Called(ctx, codigo)
	if c, ok := args.Get(0).(*domain.Categoria); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.CategoriaStore.List
func (m *TestifyMockCategoriaStore) List(ctx context.Context) ([]*domain.Categoria, error) {
	args := m.Called(ctx)
	if categorias, ok := args.Get(0).([]*domain.Categoria); ok {
		return categorias, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.CategoriaStore.Update
func (m *TestifyMockCategoriaStore) Update(ctx context.Context, c *domain.Categoria) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// Delete is a mock implementation of store.CategoriaStore.Delete
func (m *TestifyMockCategoriaStore) Delete(ctx context.Context, codigo int64) error {
	args := m.Called(ctx, codigo)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockCategoriaStore) WithTx(tx *sql.Tx) store.CategoriaStore {
	return m
}
