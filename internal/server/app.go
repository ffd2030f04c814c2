// Package server initializes and runs the account server.
// It validates configuration, opens the account store selected by the
// database URL, handles graceful shutdown and serves the HTTP API.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/brewhaven/internal/logging"
	"github.com/dmitrijs2005/brewhaven/internal/server/config"
	"github.com/dmitrijs2005/brewhaven/internal/server/httpserver"
	"github.com/dmitrijs2005/brewhaven/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/brewhaven/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	accounts    *services.AccountService
	diagnostics *services.DiagnosticsService
	metrics     *httpserver.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOutput io.Writer) (*App, error) {
	logger := logging.New(logOutput, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if c.UsesInsecureSecret() {
		logger.Warn(ctx, "using the default development secret key; set SECRET_KEY before deploying")
	}

	backend, err := repomanager.BackendFor(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.Open(ctx, c.DatabaseURL, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	logger.Info(ctx, "account store ready", "backend", backend)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &App{
		config:      c,
		logger:      logger,
		repos:       rm,
		accounts:    services.NewAccountService(rm.Accounts(), c),
		diagnostics: services.NewDiagnosticsService(rm, c.DatabaseURL),
		metrics:     httpserver.NewMetrics(reg),
	}, nil
}

// initSignalHandler cancels on SIGINT, SIGTERM or SIGQUIT. The watcher exits
// and stops signal delivery once ctx is done.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return done
}

func (app *App) router() *httpserver.RouterDeps {
	return &httpserver.RouterDeps{
		Accounts:           app.accounts,
		Diagnostics:        app.diagnostics,
		Metrics:            app.metrics,
		Logger:             app.logger,
		CORSAllowedOrigins: app.config.CORSAllowedOrigins,
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpserver.NewHTTPServer(app.config.Addr(), httpserver.NewRouter(app.router()), app.logger, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the account store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	signalsDone := app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	cancelFunc()
	<-signalsDone

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "closing account store", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
