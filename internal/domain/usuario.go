package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Role grants access to groups of operations.
type Role string

// Known roles.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole converts a role name (case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Usuario validation errors.
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrNoRoles          = errors.New("at least one role is required")
)

// Usuario is an account that can authenticate against the API.
type Usuario struct {
	Codigo         int64  `json:"codigo"`
	Username       string `json:"username"`
	Password       string `json:"-"` // Plaintext, only set while creating the account
	HashedPassword string `json:"-"`
	Roles          []Role `json:"roles"`
}

// NewUsuario creates a Usuario holding the plaintext password. The store
// hashes it before persisting.
func NewUsuario(username, password string, roles []Role) (*Usuario, error) {
	u := &Usuario{
		Username: strings.TrimSpace(username),
		Password: password,
		Roles:    roles,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the account fields.
func (u *Usuario) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		// bcrypt ignores anything past 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	}
	if len(u.Roles) == 0 {
		return ErrNoRoles
	}
	for _, r := range u.Roles {
		if _, err := ParseRole(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// HasAnyRole reports whether u holds at least one of roles.
func (u *Usuario) HasAnyRole(roles ...Role) bool {
	return slices.ContainsFunc(u.Roles, func(r Role) bool {
		return slices.Contains(roles, r)
	})
}

// RoleNames returns the roles as plain strings.
func (u *Usuario) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = string(r)
	}
	return names
}
