// Package server wires configuration, storage, services and the HTTP
// transport together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/config"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookmarks/internal/server/rest"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
)

const attemptLogDrainTimeout = 5 * time.Second

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	attemptLog      *services.AttemptLog
	userService     *services.UserService
	catalogService  *services.CatalogService
	bookmarkService *services.BookmarkService
}

// NewApp connects to PostgreSQL, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	al := services.NewAttemptLog(db, rm, logger.With("module", "attempt_log"), c.AttemptLogBuffer, c.StoreTimeout)

	us, err := services.NewUserService(db, rm, al, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		attemptLog:      al,
		userService:     us,
		catalogService:  services.NewCatalogService(db, rm, c.StoreTimeout),
		bookmarkService: services.NewBookmarkService(db, rm, c.StoreTimeout),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.catalogService, app.bookmarkService,
		rest.RateLimit{
			Requests:           app.config.RateLimitRequests,
			Window:             app.config.RateLimitWindow,
			TrustForwardHeader: app.config.TrustForwardHeader,
		})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal is received,
// then drains the attempt log and closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	app.attemptLog.Start()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	drainCtx, cancel := context.WithTimeout(context.Background(), attemptLogDrainTimeout)
	defer cancel()
	if err := app.attemptLog.Close(drainCtx); err != nil {
		app.logger.Warn(drainCtx, "attempt log not fully drained", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(drainCtx, "db close error", "error", err)
	}

	app.logger.Info(drainCtx, "App stopped")
}
