// Package server wires configuration, storage, services and listeners
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/blobstore"
	"github.com/dmitrijs2005/fitlog/internal/server/config"
	"github.com/dmitrijs2005/fitlog/internal/server/httpapi"
	"github.com/dmitrijs2005/fitlog/internal/server/metrics"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fitlog/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/fitlog/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	runners []runner
}

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newBlobStore = func(ctx context.Context, c *config.Config) (blobstore.Store, error) {
		return blobstore.NewS3Store(ctx, c)
	}
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := newBlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}

	summaries := services.NewSummaryCache(c.StatsCacheTTL)
	foods := services.NewFoodService(db, rm, summaries, logger)

	svc := httpapi.Services{
		Users:    services.NewUserService(db, rm, c, summaries, logger),
		Foods:    foods,
		Photos:   services.NewPhotoService(db, rm, store, logger),
		Catalog:  services.NewCatalogService(db, rm),
		Body:     services.NewBodyService(db, rm, summaries, logger),
		Workouts: services.NewWorkoutService(db, rm),
		Stats:    services.NewStatsService(db, rm, foods, summaries),
	}

	registry := metrics.NewRegistry()
	if err := registry.Register(collectors.NewDBStatsCollector(db, "fitlog")); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	api, err := httpapi.NewServer(c.EndpointAddrHTTP, logger, c.SecretKey, svc, registry)
	if err != nil {
		return nil, err
	}
	health := gs.NewHealthServer(c.EndpointAddrGRPC, logger, db, 0)

	return &App{config: c, logger: logger, db: db, runners: []runner{api, health}}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until a signal arrives, ctx is cancelled or one of the
// listeners fails. The others are then shut down and the database closed.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "http", app.config.EndpointAddrHTTP, "grpc", app.config.EndpointAddrGRPC)

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range app.runners {
		r := r
		g.Go(func() error {
			return r.Run(gctx)
		})
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
	}

	if app.db != nil {
		err = errors.Join(err, app.db.Close())
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}
