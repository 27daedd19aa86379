package engine

import (
	"github.com/okian/upskill/internal/domain/scoring"
	"github.com/okian/upskill/internal/domain/skill"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCourseCap sets the maximum number of courses per plan.
func WithCourseCap(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.courseCap = n
		}
	}
}

// WithWeights sets the course scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(e *Engine) {
		e.weights = &w
	}
}

// WithDefaultMaxWeeks sets the duration budget used when a profile has none.
func WithDefaultMaxWeeks(weeks int) Option {
	return func(e *Engine) {
		if weeks > 0 {
			e.defaultMaxWeeks = weeks
		}
	}
}

// WithGenericCoverage sets the placeholder coverage of generic plans.
func WithGenericCoverage(pct int) Option {
	return func(e *Engine) {
		if pct >= 0 && pct <= 100 {
			e.genericCoverage = pct
		}
	}
}

// WithDefaultDifficulty sets the preference used when a profile has none.
func WithDefaultDifficulty(d skill.Difficulty) Option {
	return func(e *Engine) {
		e.defaultDifficulty = d
	}
}
