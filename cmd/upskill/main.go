package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/upskill/internal/adapters/http/api"
	"github.com/okian/upskill/internal/adapters/http/site"
	"github.com/okian/upskill/internal/adapters/http/swagger"
	app "github.com/okian/upskill/internal/app"
	"github.com/okian/upskill/internal/config"
	"github.com/okian/upskill/internal/domain/engine"
	"github.com/okian/upskill/pkg/logger"
	"github.com/okian/upskill/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Use stderr since the logger may not be available
		os.Stderr.WriteString("upskill: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.InitWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	go metrics.RunSystemCollector(ctx)

	srv := newHTTPServer(ctx, cfg, svc, log)
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService builds and starts the advisor service from configuration.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	unrated, err := cfg.UnratedLevel()
	if err != nil {
		return nil, err
	}
	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithCatalogPath(cfg.CatalogPath),
		app.WithPlanCacheSize(cfg.PlanCacheSize),
		app.WithMaxBatchSize(cfg.MaxBatchSize),
		app.WithUnratedLevel(unrated),
		app.WithEngineOptions(
			engine.WithCourseCap(cfg.CourseCap),
			engine.WithDefaultMaxWeeks(cfg.DefaultMaxWeeks),
			engine.WithGenericCoverage(cfg.GenericCoverage),
			engine.WithWeights(cfg.Weights()),
		),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// newHTTPServer wires the API, docs and page routes.
func newHTTPServer(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) *http.Server {
	apiServer := api.NewServer(svc, svc,
		api.WithLogger(log.Named("api")),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
		api.WithRateLimit(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowSec)*time.Second),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)
	handler := apiServer.Handler(ctx, func(r chi.Router) {
		swagger.Register(ctx, r)
		site.Register(ctx, r)
	})

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
