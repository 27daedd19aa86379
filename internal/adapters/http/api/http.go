// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/okian/upskill/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AdviseDependencies
	CourseDependencies
	RolesDependencies
}

// Server wires HTTP routes for the advisor API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	adviseHandler *AdviseHandler
	courseHandler *CourseHandler
	rolesHandler  *RolesHandler

	stats        StatsProvider
	logger       logger.Logger
	corsOrigins  []string
	rateRequests int
	rateWindow   time.Duration
	maxBodyBytes int64
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		stats:        statsProvider,
		rateRequests: DefaultRateLimitRequests,
		rateWindow:   DefaultRateLimitWindow,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.adviseHandler = NewAdviseHandler(deps, s.logger)
	s.courseHandler = NewCourseHandler(deps)
	s.rolesHandler = NewRolesHandler(deps)
	return s
}

// Handler builds the router. mounts attach extra routes such as the API docs.
func (s *Server) Handler(ctx context.Context, mounts ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(TraceMiddleware)
	r.Use(observeMiddleware(s.stats, s.logger))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", TraceHeader},
		ExposedHeaders: []string{TraceHeader},
		MaxAge:         300,
	}))

	s.Register(ctx, r)
	for _, mount := range mounts {
		mount(r)
	}
	return r
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/health", s.healthHandler.HandleLiveness)
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/roles", MetricsMiddleware(s.rolesHandler.HandleGetRoles, "roles"))
	r.Get("/course/{id}", MetricsMiddleware(s.courseHandler.HandleGetCourse, "course"))

	r.Group(func(r chi.Router) {
		if s.rateRequests > 0 {
			r.Use(httprate.LimitByIP(s.rateRequests, s.rateWindow))
		}
		r.Use(maxBodyMiddleware(s.maxBodyBytes))
		r.Post("/advise", MetricsMiddleware(s.adviseHandler.HandleAdvise, "advise"))
		r.Post("/advise/batch", MetricsMiddleware(s.adviseHandler.HandleAdviseBatch, "advise_batch"))
	})
}
