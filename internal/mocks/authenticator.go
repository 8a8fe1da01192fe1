package mocks

import (
	"context"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// MockAuthenticator implements the credential check used by the login handler.
type MockAuthenticator struct {
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.Usuario, error)

	// Default values used when AuthenticateFn is nil
	Usuario *domain.Usuario
	Err     error

	// Recorded arguments of the last call
	CalledWithUsername string
	CallCount          int
}

// Authenticate records the call and returns the configured result.
func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (*domain.Usuario, error) {
	m.CalledWithUsername = username
	m.CallCount++

	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	return m.Usuario, m.Err
}
