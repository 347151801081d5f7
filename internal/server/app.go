// Package server initializes and runs the application server: it opens the
// database pool, applies migrations, wires repositories and services into the
// HTTP surface, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mpetrenko/linkfolio/internal/logging"
	"github.com/mpetrenko/linkfolio/internal/server/config"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/repomanager"
	"github.com/mpetrenko/linkfolio/internal/server/services"
	transport "github.com/mpetrenko/linkfolio/internal/server/transport/http"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxDBConns)

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	authSvc := services.NewAuthService(db, rm, cfg)
	onboardingSvc := services.NewOnboardingService(db, rm, cfg)
	profileSvc := services.NewProfileService(db, rm, cfg)
	analyticsSvc := services.NewAnalyticsService(db, rm, cfg)

	handler := transport.NewHandler(authSvc, onboardingSvc, profileSvc, analyticsSvc, logger)
	router := transport.NewRouter(handler, cfg, logger)

	return &App{config: cfg, logger: logger, db: db, handler: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or a
// termination signal arrives, then drains in-flight requests and closes the
// pool.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "server failed", "error", err)
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
