package mocks

import (
	"context"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockLancamentoService is a testify mock of service.LancamentoService.
type MockLancamentoService struct {
	mock.Mock
}

func (m *MockLancamentoService) Create(ctx context.Context, in domain.LancamentoInput) (*domain.Lancamento, error) {
	args := m.Called(ctx, in)
	if l, ok := args.Get(0).(*domain.Lancamento); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLancamentoService) GetByID(ctx context.Context, codigo int64) (*domain.Lancamento, error) {
	args := m.Called(ctx, codigo)
	if l, ok := args.Get(0).(*domain.Lancamento); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLancamentoService) Update(
	ctx context.Context,
	codigo int64,
	in domain.LancamentoInput,
) (*domain.Lancamento, error) {
	args := m.Called(ctx, codigo, in)
	if l, ok := args.Get(0).(*domain.Lancamento); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLancamentoService) Delete(ctx context.Context, codigo int64) error {
	args := m.Called(ctx, codigo)
	return args.Error(0)
}

func (m *MockLancamentoService) Search(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) (domain.Page[*domain.Lancamento], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(domain.Page[*domain.Lancamento]), args.Error(1)
}

func (m *MockLancamentoService) Summarize(
	ctx context.Context,
	filter domain.LancamentoFilter,
	page domain.PageRequest,
) (domain.Page[*domain.ResumoLancamento], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(domain.Page[*domain.ResumoLancamento]), args.Error(1)
}
