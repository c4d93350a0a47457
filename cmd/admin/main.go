package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fitlog/internal/admin"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/config"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fitlog/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"
)

func open(ctx context.Context, cfg *config.Config) (*admin.Env, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}
	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)
	return &admin.Env{
		DB:       db,
		Migrator: rm,
		Users:    services.NewUserService(db, rm, cfg, nil, logger),
	}, nil
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// only the environment feeds the config; the command line belongs to cobra
	cfg := config.Load(nil)

	err := admin.Command(cfg, open, readPassword).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
