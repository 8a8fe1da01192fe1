package mocks

import (
	"context"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockPessoaService is a testify mock of service.PessoaService.
type MockPessoaService struct {
	mock.Mock
}

func (m *MockPessoaService) Create(ctx context.Context, in domain.PessoaInput) (*domain.Pessoa, error) {
	args := m.Called(ctx, in)
	if p, ok := args.Get(0).(*domain.Pessoa); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPessoaService) GetByID(ctx context.Context, codigo int64) (*domain.Pessoa, error) {
	args := m.Called(ctx, codigo)
	if p, ok := args.Get(0).(*domain.Pessoa); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPessoaService) List(
	ctx context.Context,
	nome *string,
	page domain.PageRequest,
) (domain.Page[*domain.Pessoa], error) {
	args := m.Called(ctx, nome, page)
	return args.Get(0).(domain.Page[*domain.Pessoa]), args.Error(1)
}

func (m *MockPessoaService) Update(ctx context.Context, codigo int64, in domain.PessoaInput) (*domain.Pessoa, error) {
	args := m.Called(ctx, codigo, in)
	if p, ok := args.Get(0).(*domain.Pessoa); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPessoaService) UpdateAtivo(ctx context.Context, codigo int64, ativo bool) (*domain.Pessoa, error) {
	args := m.Called(ctx, codigo, ativo)
	if p, ok := args.Get(0).(*domain.Pessoa); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPessoaService) Delete(ctx context.Context, codigo int64) error {
	args := m.Called(ctx, codigo)
	return args.Error(0)
}
