package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks username/password pairs against stored usuarios.
type Authenticator struct {
	usuarios store.UsuarioStore
	verifier PasswordVerifier
	logger   *slog.Logger
}

// NewAuthenticator creates an Authenticator.
// It returns an error if any of the required dependencies are nil.
func NewAuthenticator(usuarios store.UsuarioStore, verifier PasswordVerifier, logger *slog.Logger) (*Authenticator, error) {
	if usuarios == nil {
		return nil, fmt.Errorf("usuario store cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Authenticator{
		usuarios: usuarios,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "authenticator")),
	}, nil
}

// unknownUserHash is compared against when the username does not exist so
// that unknown and known usernames take the same time to reject.
var unknownUserHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("pagamentos-unknown-user"), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
})

// Authenticate returns the usuario when the password matches its stored hash.
// Any credential mismatch yields ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*domain.Usuario, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	usuario, err := a.usuarios.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			_ = a.verifier.Compare(unknownUserHash(), password)
			log.Debug("login rejected: unknown username")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load usuario for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load usuario: %w", err)
	}

	if err := a.verifier.Compare(usuario.HashedPassword, password); err != nil {
		log.Debug("login rejected: password mismatch", slog.Int64("usuario_codigo", usuario.Codigo))
		return nil, ErrInvalidCredentials
	}

	log.Info("usuario authenticated", slog.Int64("usuario_codigo", usuario.Codigo))
	return usuario, nil
}
