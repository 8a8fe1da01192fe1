package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/logger"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUsuarioStore implements the store.UsuarioStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUsuarioStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUsuarioStore creates a new PostgreSQL implementation of the UsuarioStore interface.
// bcryptCost is used when hashing plaintext passwords on Create; out-of-range values fall
// back to bcrypt.DefaultCost.
func NewPostgresUsuarioStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresUsuarioStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUsuarioStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "usuario_store")),
	}
}

// Ensure PostgresUsuarioStore implements store.UsuarioStore interface
var _ store.UsuarioStore = (*PostgresUsuarioStore)(nil)

// WithTx implements store.UsuarioStore.WithTx
func (s *PostgresUsuarioStore) WithTx(tx *sql.Tx) store.UsuarioStore {
	return &PostgresUsuarioStore{db: tx, bcryptCost: s.bcryptCost, logger: s.logger}
}

// Create implements store.UsuarioStore.Create
// The usuario row and its roles are written with separate statements, so
// callers should bind the store to a transaction with WithTx.
func (s *PostgresUsuarioStore) Create(ctx context.Context, u *domain.Usuario) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := u.Validate(); err != nil {
		log.Warn("usuario validation failed during create",
			slog.String("error", err.Error()),
			slog.String("username", u.Username))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if u.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		u.HashedPassword = string(hash)
		u.Password = ""
	}
	if u.HashedPassword == "" {
		return fmt.Errorf("%w: password hash is empty", store.ErrInvalidEntity)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO usuario (username, hashed_password) VALUES ($1, $2) RETURNING codigo`,
		u.Username,
		u.HashedPassword,
	).Scan(&u.Codigo)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("username already exists", slog.String("username", u.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to create usuario",
			slog.String("error", err.Error()),
			slog.String("username", u.Username))
		return MapError(err)
	}

	for _, role := range u.Roles {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO usuario_role (codigo_usuario, role) VALUES ($1, $2)`,
			u.Codigo,
			string(role),
		)
		if err != nil {
			log.Error("failed to assign role",
				slog.String("error", err.Error()),
				slog.Int64("usuario_codigo", u.Codigo),
				slog.String("role", string(role)))
			return MapError(err)
		}
	}

	log.Info("usuario created successfully",
		slog.Int64("usuario_codigo", u.Codigo),
		slog.String("username", u.Username))
	return nil
}

// GetByUsername implements store.UsuarioStore.GetByUsername
func (s *PostgresUsuarioStore) GetByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.codigo, u.username, u.hashed_password,
			COALESCE(string_agg(r.role, ',' ORDER BY r.role), '')
		FROM usuario u
		LEFT JOIN usuario_role r ON r.codigo_usuario = u.codigo
		WHERE u.username = $1
		GROUP BY u.codigo, u.username, u.hashed_password
	`

	var (
		u     domain.Usuario
		roles string
	)
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&u.Codigo,
		&u.Username,
		&u.HashedPassword,
		&roles,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("usuario not found", slog.String("username", username))
			return nil, store.ErrUsuarioNotFound
		}
		log.Error("failed to get usuario by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, MapError(err)
	}

	if roles != "" {
		for _, r := range strings.Split(roles, ",") {
			u.Roles = append(u.Roles, domain.Role(r))
		}
	}

	return &u, nil
}
