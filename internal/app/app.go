// Package app wires configuration, logging, services and the HTTP router
// into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finpulse/internal/config"
	"finpulse/internal/dataset"
	apierrors "finpulse/internal/errors"
	"finpulse/internal/infrastructure"
	"finpulse/internal/middleware"
	"finpulse/internal/services"
	transporthttp "finpulse/internal/transport/http"
	"finpulse/pkg/contracts"
)

// Application holds the long-lived components of the dashboard server.
type Application struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server

	store     *dataset.Store
	dashboard *services.DashboardService
	health    *services.HealthService
}

// New builds the application from configuration: logger, dataset store,
// services, handlers and the router.
func New(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	store := dataset.NewStore(logger)
	dashboard := services.NewDashboardService(store, cfg.Dataset.Path, logger)
	health := services.NewHealthService(contracts.Version, contracts.BuildTime, cfg.Dataset.Path, logger)

	app := &Application{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		dashboard: dashboard,
		health:    health,
	}

	app.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.router(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// router assembles the middleware chain and mounts the API routes.
func (a *Application) router() http.Handler {
	errorHandler := apierrors.NewErrorHandler(a.logger, false)
	dashboardHandler := transporthttp.NewDashboardHandler(a.dashboard, a.logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(a.health, a.logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(middleware.Instrument)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compress(5))

	if a.cfg.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			a.cfg.Security.RateLimit.RPS,
			a.cfg.Security.RateLimit.Burst,
			a.logger,
		)
		r.Use(limiter.Handler)
	}

	if a.cfg.Security.EnableCORS {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: a.cfg.Security.AllowedOrigins,
			Logger:         a.logger,
		}))
	}

	r.Mount("/api/dashboard", dashboardHandler.Routes())
	r.Post("/api/export", dashboardHandler.Export)
	r.Mount("/api/health", healthHandler.Routes())
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the process receives SIGINT/SIGTERM, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prime the cache so a broken dataset path is visible at startup, not
	// on the first request. Failure is logged, not fatal: the file may
	// appear later and health reports it meanwhile.
	if _, err := a.store.GetOrLoad(ctx, a.cfg.Dataset.Path); err != nil {
		a.logger.Warn("dataset not loadable at startup",
			slog.String("path", a.cfg.Dataset.Path),
			slog.String("error", err.Error()))
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			slog.String("addr", a.server.Addr),
			slog.String("version", contracts.Version),
			slog.String("dataset", a.cfg.Dataset.Path))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	infrastructure.CloseLogFile()
	return nil
}
