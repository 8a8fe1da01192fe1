package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/platform/postgres"
	"github.com/phrazzld/pagamentos-api/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newUserCmd(configPath func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API accounts",
	}
	cmd.AddCommand(newUserCreateCmd(configPath))
	cmd.AddCommand(newUserHashCmd())
	return cmd
}

func newUserCreateCmd(configPath func() string) *cobra.Command {
	var (
		username string
		password string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account that can log in to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			usuario, err := buildUsuario(username, password, roles)
			if err != nil {
				return err
			}

			return withDatabase(cmd.Context(), configPath(), func(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
				usuarios := postgres.NewPostgresUsuarioStore(db, bcrypt.DefaultCost, logger)
				err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
					return usuarios.WithTx(tx).Create(ctx, usuario)
				})
				if err != nil {
					return fmt.Errorf("failed to create usuario: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created usuario %q (codigo %d) with roles %s\n",
					usuario.Username, usuario.Codigo, strings.Join(usuario.RoleNames(), ","))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&password, "password", "", "plaintext password, 8 to 72 bytes (required)")
	cmd.Flags().StringSliceVar(&roles, "role", []string{string(domain.RoleUser)}, "role to grant, repeatable (ADMIN, USER)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// buildUsuario validates the flag values before any database work.
func buildUsuario(username, password string, roleNames []string) (*domain.Usuario, error) {
	roles := make([]domain.Role, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := domain.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return domain.NewUsuario(username, password, roles)
}

func newUserHashCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash [password]",
		Short: "Print the bcrypt hash of a password",
		Long:  "Print the bcrypt hash of a password given as argument or, without one, read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = line
			}

			hash, err := hashPassword(password, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password cannot be empty")
	}
	return line, nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
