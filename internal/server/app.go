// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/filmlog/internal/dbx"
	"github.com/dmitrijs2005/filmlog/internal/logging"
	"github.com/dmitrijs2005/filmlog/internal/server/auth"
	"github.com/dmitrijs2005/filmlog/internal/server/config"
	"github.com/dmitrijs2005/filmlog/internal/server/httpapi"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filmlog/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp builds the application. In postgres mode it connects to the
// database and applies migrations before returning. Logs go to out.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.NewJSONLogger(out, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	codec, err := auth.NewTokenCodec([]byte(c.SecretKey))
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}

	var (
		store dbx.Store
		rm    repomanager.RepositoryManager
	)
	switch c.StorageMode {
	case config.StorageModeMemory:
		store, rm = dbx.NopStore{}, memory.NewManager()
		logger.Warn(ctx, "using in-memory storage, data will not survive a restart")
	default:
		db, err := app.initDB(ctx)
		if err != nil {
			return nil, err
		}
		app.db = db
		store, rm = dbx.NewSQLStore(db), repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
	}

	users := services.NewUserService(store, rm, auth.NewPasswordHasher(c.BcryptCost), codec, c.SessionTTL)
	movies := services.NewMovieService(store, rm)

	app.handler = httpapi.NewRouter(httpapi.RouterDeps{
		Users:       users,
		Movies:      movies,
		Sessions:    users,
		Codec:       codec,
		Logger:      logger.With("module", "http"),
		CORSOrigins: c.CORSAllowedOrigins,
	})
	return app, nil
}

func (app *App) initDB(ctx context.Context) (*sql.DB, error) {
	db, err := openDB(app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// Handler exposes the HTTP API, mainly for tests.
func (app *App) Handler() http.Handler {
	return app.handler
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

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then releases the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.handler, app.logger, httpapi.Timeouts{
		Read:     app.config.ReadTimeout,
		Write:    app.config.WriteTimeout,
		Shutdown: app.config.ShutdownTimeout,
	})
	runErr := s.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server failed", "error", runErr)
	}

	if err := app.Close(); err != nil && runErr == nil {
		runErr = err
	}
	app.logger.Info(ctx, "App stopped")
	return runErr
}

// Close releases the database pool, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	db := app.db
	app.db = nil
	return db.Close()
}
