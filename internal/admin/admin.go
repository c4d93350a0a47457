// Package admin implements the operator commands of fitlog-admin.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fitlog/internal/server/config"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/spf13/cobra"
)

type Migrator interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
}

type Registrar interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
}

// Env is what a command needs from the outside world. Close releases it.
type Env struct {
	DB       *sql.DB
	Migrator Migrator
	Users    Registrar
}

func (e *Env) Close() error {
	if e.DB == nil {
		return nil
	}
	return e.DB.Close()
}

// Opener connects to the database described by cfg.
type Opener func(ctx context.Context, cfg *config.Config) (*Env, error)

// PasswordReader reads a secret from the terminal without echoing it.
type PasswordReader func(prompt string) (string, error)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Command creates the root command with its subcommands.
func Command(cfg *config.Config, open Opener, readPassword PasswordReader) *cobra.Command {
	root := &cobra.Command{
		Use:           "fitlog-admin",
		Short:         "fitlog operator tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "PostgreSQL DSN")

	root.AddCommand(
		migrateCommand(cfg, open),
		userAddCommand(cfg, open, readPassword),
	)
	return root
}

func migrateCommand(cfg *config.Config, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			env, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, env.Close()) }()

			if err := env.Migrator.RunMigrations(cmd.Context(), env.DB); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func userAddCommand(cfg *config.Config, open Opener, readPassword PasswordReader) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Create a user; the password is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			password, err := askPassword(readPassword)
			if err != nil {
				return err
			}

			env, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, env.Close()) }()

			u, err := env.Users.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login e-mail")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func askPassword(readPassword PasswordReader) (string, error) {
	first, err := readPassword("Password: ")
	if err != nil {
		return "", err
	}
	second, err := readPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "created user %d <%s>\n", u.ID, u.Email)
}
