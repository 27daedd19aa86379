// Package service provides the advisor service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/upskill/internal/adapters/plancache"
	"github.com/okian/upskill/internal/adapters/repository"
	"github.com/okian/upskill/internal/domain/engine"
	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/safety"
	"github.com/okian/upskill/internal/domain/skill"
	"github.com/okian/upskill/internal/validation"
	"github.com/okian/upskill/pkg/logger"
	"github.com/okian/upskill/pkg/metrics"
)

// Defaults for the service.
const (
	DefaultMaxBatchSize = 20
)

// Service plans upskilling paths against a catalog store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	engine *engine.Engine
	cache  plancache.Cache
	stats  *requestStats

	// Configuration
	catalogPath string
	engineOpts  []engine.Option
	cacheSize   int
	maxBatch    int
	unrated     skill.Level
	statsWindow int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheSize:   plancache.DefaultMaxSize,
		maxBatch:    DefaultMaxBatchSize,
		unrated:     skill.Intermediate,
		statsWindow: DefaultStatsWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stats = newRequestStats(s.statsWindow)
	return s
}

// Start loads the catalog and builds the engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting advisor service...")

	if s.store == nil {
		store, err := repository.NewCatalogStore(repository.WithPath(s.catalogPath))
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.store = store
	}
	s.engine = engine.New(s.engineOpts...)
	s.cache = plancache.New(plancache.WithMaxSize(s.cacheSize))

	s.started = true
	s.logger.Info(ctx, "advisor service started",
		logger.Int("courses", len(s.store.Courses())),
		logger.Int("roles", len(s.store.Roles())),
		logger.Int("courseCap", s.engine.CourseCap()),
		logger.Int("cacheSize", s.cacheSize),
	)
	return nil
}

// Stop releases cached plans. The service may be started again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping advisor service...")
	s.cache.Purge(ctx)
	s.started = false
	s.logger.Info(ctx, "advisor service stopped")
}

func (s *Service) components() (repository.Store, *engine.Engine, plancache.Cache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.store, s.engine, s.cache, nil
}

// Advise validates a profile and returns its plan. Identical profiles are
// served from the plan cache.
func (s *Service) Advise(ctx context.Context, profile model.Profile) (model.Plan, error) {
	store, eng, cache, err := s.components()
	if err != nil {
		return model.Plan{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Plan{}, err
	}

	if err := validation.ValidateProfile(profile); err != nil {
		metrics.RecordValidationFailure()
		s.logger.Warn(ctx, "profile rejected", logger.Error(err))
		return model.Plan{}, err
	}
	if err := safety.CheckProfile(profile); err != nil {
		metrics.RecordUnsafeInput()
		s.logger.Warn(ctx, "unsafe profile rejected", logger.Error(err))
		return model.Plan{}, err
	}

	key := plancache.KeyFor(profile)
	if plan, ok := cache.Get(ctx, key); ok {
		metrics.RecordCacheLookup(true)
		s.logger.Debug(ctx, "plan served from cache", logger.String("key", key.String()))
		return plan, nil
	}
	metrics.RecordCacheLookup(false)

	start := time.Now()
	plan := eng.Plan(profile, store, store.Courses())
	elapsed := time.Since(start)

	path := metrics.PathTargeted
	if plan.Generic {
		path = metrics.PathGeneric
	}
	metrics.RecordPlan(path, elapsed, plan.CoverageScore, plan.DiversityScore, len(plan.Items))
	cache.Put(ctx, key, plan)

	s.logger.Debug(ctx, "plan generated",
		logger.String("goalRole", safety.RedactPII(profile.GoalRole)),
		logger.String("path", path),
		logger.Int("items", len(plan.Items)),
		logger.Int("coverage", plan.CoverageScore),
		logger.Duration("elapsed", elapsed),
	)
	return plan, nil
}

// AdviseBatch plans every profile concurrently. Plans keep request order.
// The first failing profile aborts the batch and is named in the error.
func (s *Service) AdviseBatch(ctx context.Context, profiles []model.Profile) ([]model.Plan, error) {
	if _, _, _, err := s.components(); err != nil {
		return nil, err
	}
	switch {
	case len(profiles) == 0:
		return nil, ErrEmptyBatch
	case len(profiles) > s.maxBatch:
		return nil, fmt.Errorf("%w: %d profiles, max %d", ErrBatchTooLarge, len(profiles), s.maxBatch)
	}
	metrics.RecordBatchSize(len(profiles))

	plans := make([]model.Plan, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range profiles {
		g.Go(func() error {
			plan, err := s.Advise(gctx, profiles[i])
			if err != nil {
				return fmt.Errorf("profile %d: %w", i, err)
			}
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Course returns one catalog course.
func (s *Service) Course(_ context.Context, id string) (model.Course, error) {
	store, _, _, err := s.components()
	if err != nil {
		return model.Course{}, err
	}
	return store.Course(id)
}

// Roles returns every known role requirement.
func (s *Service) Roles(_ context.Context) ([]model.RoleRequirement, error) {
	store, _, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.Roles(), nil
}

// UnratedLevel is the level assumed for a skill given without a rating.
func (s *Service) UnratedLevel() skill.Level {
	return s.unrated
}

// MaxBatchSize returns the batch cap.
func (s *Service) MaxBatchSize() int {
	return s.maxBatch
}

// ObserveRequest records one finished HTTP request for GetStats.
func (s *Service) ObserveRequest(status int, d time.Duration) {
	s.stats.observe(status, d)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	snap := s.stats.snapshot()
	stats := map[string]interface{}{
		"requests":        snap.Requests,
		"non_200_rate":    snap.Non200Rate,
		"p95_latency_sec": snap.P95,
		"avg_latency_sec": snap.Avg,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	stats["started"] = s.started
	if s.started {
		courses, roles := len(s.store.Courses()), len(s.store.Roles())
		stats["catalog_courses"] = courses
		stats["catalog_roles"] = roles
		stats["plan_cache_size"] = s.cache.Size()
		stats["course_cap"] = s.engine.CourseCap()
		metrics.UpdateCatalogSize(courses, roles)
	}
	return stats
}
