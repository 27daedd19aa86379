package service

import (
	"github.com/okian/upskill/internal/adapters/repository"
	"github.com/okian/upskill/internal/domain/engine"
	"github.com/okian/upskill/internal/domain/skill"
	"github.com/okian/upskill/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalogPath loads the catalog from a YAML file on Start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithStore uses an existing store instead of loading one on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngineOptions configures the planning engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithPlanCacheSize bounds the plan cache. Zero disables caching.
func WithPlanCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithMaxBatchSize caps the number of profiles per batch.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// WithUnratedLevel sets the level assumed for skills given without a rating.
func WithUnratedLevel(l skill.Level) Option {
	return func(s *Service) {
		if l.Valid() {
			s.unrated = l
		}
	}
}

// WithStatsWindow sets how many recent requests the latency stats cover.
func WithStatsWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.statsWindow = n
		}
	}
}
