// Package server wires configuration, storage, services and transports into
// a runnable fintrack API process and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/config"
	"github.com/dmitrijs2005/fintrack/internal/server/httpapi"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fintrack/internal/server/services"

	gs "github.com/dmitrijs2005/fintrack/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
	health *gs.HealthServer
}

// openStorage returns the repository manager for the configured backend.
// The returned *sql.DB is nil for in-memory storage.
func openStorage(ctx context.Context, c *config.Config, l logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.Storage == config.StorageMemory {
		l.Warn(ctx, "using in-memory storage, data is lost on exit")
		return nil, repomanager.NewInMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, m, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, m, err := openStorage(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenService(c.SecretKey, c.TokenValidity)

	users, err := services.NewUserService(db, m, tokens)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	router := httpapi.NewRouter(httpapi.Services{
		Users:        users,
		Transactions: services.NewTransactionService(db, m),
		Budgets:      services.NewBudgetService(db, m),
		Goals:        services.NewGoalService(db, m),
		Exporter:     services.NewExportService(db, m, c),
		Tokens:       tokens,
	}, c.CORSOrigins, logger.With("module", "httpapi"))

	return &App{
		config: c,
		logger: logger,
		db:     db,
		api:    httpapi.NewServer(c, router, logger),
		health: gs.NewHealthServer(c.HealthAddrGRPC, logger),
	}, nil
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

// runComponent runs fn and cancels the whole app if it fails.
func (app *App) runComponent(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "component failed", "component", name, "error", err)
		cancelFunc()
	}
}

// Run serves the HTTP API and the gRPC health probe until ctx is cancelled
// or a shutdown signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runComponent(ctx, cancelFunc, "http", app.api.Run)
	}()
	go func() {
		defer wg.Done()
		app.runComponent(ctx, cancelFunc, "grpc_health", app.health.Run)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
