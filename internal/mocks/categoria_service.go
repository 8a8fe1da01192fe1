package mocks

import (
	"context"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockCategoriaService is a testify mock of service.CategoriaService.
type MockCategoriaService struct {
	mock.Mock
}

func (m *MockCategoriaService) List(ctx context.Context) ([]*domain.Categoria, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).([]*domain.Categoria); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoriaService) GetByID(ctx context.Context, codigo int64) (*domain.Categoria, error) {
	args := m.Called(ctx, codigo)
	if c, ok := args.Get(0).(*domain.Categoria); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoriaService) Create(ctx context.Context, in domain.CategoriaInput) (*domain.Categoria, error) {
	args := m.Called(ctx, in)
	if c, ok := args.Get(0).(*domain.Categoria); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoriaService) Update(
	ctx context.Context,
	codigo int64,
	in domain.CategoriaInput,
) (*domain.Categoria, error) {
	args := m.Called(ctx, codigo, in)
	if c, ok := args.Get(0).(*domain.Categoria); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoriaService) Delete(ctx context.Context, codigo int64) error {
	args := m.Called(ctx, codigo)
	return args.Error(0)
}
