// Package config defines service configuration and its loader.
package config

import (
	"fmt"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/quality"
	"github.com/okian/upskill/internal/domain/scoring"
	"github.com/okian/upskill/internal/domain/selection"
	"github.com/okian/upskill/internal/domain/skill"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// CatalogPath points at a YAML catalog. Empty uses the embedded catalog.
	CatalogPath string `koanf:"catalog_path"`

	// Engine tuning.
	CourseCap         int    `koanf:"course_cap"`
	DefaultMaxWeeks   int    `koanf:"default_max_weeks"`
	GenericCoverage   int    `koanf:"generic_coverage"`
	UnratedSkillLevel string `koanf:"unrated_skill_level"`

	// Scoring weights.
	SkillMatchWeight      int `koanf:"skill_match_weight"`
	DifficultyBonus       int `koanf:"difficulty_bonus"`
	DifficultyPenalty     int `koanf:"difficulty_penalty"`
	DurationPenalty       int `koanf:"duration_penalty"`
	DurationBudgetDivisor int `koanf:"duration_budget_divisor"`

	// PlanCacheSize bounds the plan cache; 0 disables it.
	PlanCacheSize int `koanf:"plan_cache_size"`
	// MaxBatchSize caps POST /advise/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// HTTP guards.
	RateLimitRequests  int      `koanf:"rate_limit_requests"`
	RateLimitWindowSec int      `koanf:"rate_limit_window_sec"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	MaxBodyBytes       int64    `koanf:"max_body_bytes"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":8000",
		CourseCap:             selection.DefaultCourseCap,
		DefaultMaxWeeks:       model.DefaultMaxDurationWeeks,
		GenericCoverage:       quality.DefaultGenericCoverage,
		UnratedSkillLevel:     skill.Intermediate.String(),
		SkillMatchWeight:      scoring.DefaultSkillMatchWeight,
		DifficultyBonus:       scoring.DefaultDifficultyBonus,
		DifficultyPenalty:     scoring.DefaultDifficultyPenalty,
		DurationPenalty:       scoring.DefaultDurationPenalty,
		DurationBudgetDivisor: scoring.DefaultDurationBudgetDivisor,
		PlanCacheSize:         1024,
		MaxBatchSize:          20,
		RateLimitRequests:     120,
		RateLimitWindowSec:    60,
		CORSAllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:4173",
			"http://127.0.0.1:4173",
		},
		MaxBodyBytes: 1 << 20,
	}
}

// Weights returns the scoring weights.
func (c *Config) Weights() scoring.Weights {
	return scoring.Weights{
		SkillMatch:            c.SkillMatchWeight,
		DifficultyBonus:       c.DifficultyBonus,
		DifficultyPenalty:     c.DifficultyPenalty,
		DurationPenalty:       c.DurationPenalty,
		DurationBudgetDivisor: c.DurationBudgetDivisor,
	}
}

// UnratedLevel parses UnratedSkillLevel.
func (c *Config) UnratedLevel() (skill.Level, error) {
	return skill.ParseLevel(c.UnratedSkillLevel)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CourseCap <= 0:
		return fmt.Errorf("%w: course_cap must be positive", ErrInvalidConfig)
	case c.DefaultMaxWeeks <= 0:
		return fmt.Errorf("%w: default_max_weeks must be positive", ErrInvalidConfig)
	case c.DurationBudgetDivisor <= 0:
		return fmt.Errorf("%w: duration_budget_divisor must be positive", ErrInvalidConfig)
	case c.GenericCoverage < 0 || c.GenericCoverage > 100:
		return fmt.Errorf("%w: generic_coverage must be within 0..100", ErrInvalidConfig)
	case c.MaxBatchSize <= 0:
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	case c.RateLimitRequests <= 0 || c.RateLimitWindowSec <= 0:
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	if _, err := c.UnratedLevel(); err != nil {
		return fmt.Errorf("%w: unrated_skill_level: %v", ErrInvalidConfig, err)
	}
	return nil
}
