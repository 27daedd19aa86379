package selection

import "github.com/okian/upskill/internal/domain/scoring"

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithCap sets the maximum number of courses per plan. Non-positive values are ignored.
func WithCap(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithScorer replaces the course scorer.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Selector) {
		if sc != nil {
			s.scorer = sc
		}
	}
}
