package auth

import (
	"context"
	"slices"
	"time"

	"github.com/phrazzld/pagamentos-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the usuario.
	// Returns the token string and its expiry time.
	GenerateToken(ctx context.Context, usuario *domain.Usuario) (string, time.Time, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing usuario information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
type Claims struct {
	// UsuarioCodigo is the identifier of the usuario the token was issued for.
	UsuarioCodigo int64 `json:"uid,omitempty"`

	// Username doubles as the token subject.
	Username string `json:"user_name,omitempty"`

	// Roles granted to the usuario when the token was issued.
	Roles []string `json:"authorities,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// HasAnyRole reports whether the token grants at least one of roles.
func (c *Claims) HasAnyRole(roles ...domain.Role) bool {
	for _, r := range roles {
		if slices.Contains(c.Roles, string(r)) {
			return true
		}
	}
	return false
}
