package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockLancamentoStore is a mock of store.LancamentoStore interface for use with testify/mock
type TestifyMockLancamentoStore struct {
	mock.Mock
}

// Create is a mock implementation of store.LancamentoStore.Create
func (m *TestifyMockLancamentoStore) Create(ctx context.Context, l *domain.Lancamento) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// GetByID is a mock implementation of store.LancamentoStore.GetByID
func (m *TestifyMockLancamentoStore) GetByID(ctx context.Context, codigo int64) (*domain.Lancamento, error) {
	args := m.Called(ctx, codigo)
	if l, ok := args.Get(0).(*domain.Lancamento); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

// Search is a mock implementation of store.LancamentoStore.Search
func (m *TestifyMockLancamentoStore) Search(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) ([]*domain.Lancamento, int64, error) {
	args := m.Called(ctx, filter, page)
	if lancamentos, ok := args.Get(0).([]*domain.Lancamento); ok {
		return lancamentos, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

// Summarize is a mock implementation of store.LancamentoStore.Summarize
func (m *TestifyMockLancamentoStore) Summarize(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) ([]*domain.ResumoLancamento, int64, error) {
	args := m.Called(ctx, filter, page)
	if resumos, ok := args.Get(0).([]*domain.ResumoLancamento); ok {
		return resumos, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

// Update is a mock implementation of store.LancamentoStore.Update
func (m *TestifyMockLancamentoStore) Update(ctx context.Context, l *domain.Lancamento) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// Delete is a mock implementation of store.LancamentoStore.Delete
func (m *TestifyMockLancamentoStore) Delete(ctx context.Context, codigo int64) error {
	args := m.Called(ctx, codigo)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockLancamentoStore) WithTx(tx *sql.Tx) store.LancamentoStore {
	return m
}
