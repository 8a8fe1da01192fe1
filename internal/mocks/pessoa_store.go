package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockPessoaStore is a mock of store.PessoaStore interface for use with testify/mock
type TestifyMockPessoaStore struct {
	mock.Mock
}

// Create is a mock implementation of store.PessoaStore.Create
func (m *TestifyMockPessoaStore) Create(ctx context.Context, p *domain.Pessoa) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// GetByID is a mock implementation of store.PessoaStore.GetByID
func (m *TestifyMockPessoaStore) GetByID(ctx context.Context, codigo int64) (*domain.Pessoa, error) {
	args := m.Called(ctx, codigo)
	if p, ok := args.Get(0).(*domain.Pessoa); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByIDForUpdate is a mock implementation of store.PessoaStore.GetByIDForUpdate
func (m *TestifyMockPessoaStore) GetByIDForUpdate(ctx context.Context, codigo int64) (*domain.Pessoa, error) {
	args := m.Called(ctx, codigo)
	if p, ok := args.Get(0).(*domain.Pessoa); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.PessoaStore.List
func (m *TestifyMockPessoaStore) List(
	ctx context.Context,
	nome string,
	page domain.PageRequest,
) ([]*domain.Pessoa, int64, error) {
	args := m.Called(ctx, nome, page)
	if pessoas, ok := args.Get(0).([]*domain.Pessoa); ok {
		return pessoas, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

// Update is a mock implementation of store.PessoaStore.Update
func (m *TestifyMockPessoaStore) Update(ctx context.Context, p *domain.Pessoa) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// Delete is a mock implementation of store.PessoaStore.Delete
func (m *TestifyMockPessoaStore) Delete(ctx context.Context, codigo int64) error {
	args := m.Called(ctx, codigo)
	return args.Error(0)
}

// WithTx returns the mock itself so expectations set on it also cover
// calls made inside a transaction.
func (m *TestifyMockPessoaStore) WithTx(tx *sql.Tx) store.PessoaStore {
	return m
}
