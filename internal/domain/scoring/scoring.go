// Package scoring ranks catalog courses against a learner's outstanding skills.
package scoring

import (
	"sort"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/skill"
)

// Default scoring weights.
const (
	DefaultSkillMatchWeight      = 10
	DefaultDifficultyBonus       = 5
	DefaultDifficultyPenalty     = 3
	DefaultDurationPenalty       = 2
	DefaultDurationBudgetDivisor = 3
)

// Weights are the linear terms of the course score.
type Weights struct {
	SkillMatch            int // per outstanding skill a course teaches
	DifficultyBonus       int // course difficulty equals the preference
	DifficultyPenalty     int // Beginner vs Advanced mismatch
	DurationPenalty       int // course exceeds the duration budget share
	DurationBudgetDivisor int // share of max weeks a single course may take
}

// DefaultWeights returns the reference weights.
func DefaultWeights() Weights {
	return Weights{
		SkillMatch:            DefaultSkillMatchWeight,
		DifficultyBonus:       DefaultDifficultyBonus,
		DifficultyPenalty:     DefaultDifficultyPenalty,
		DurationPenalty:       DefaultDurationPenalty,
		DurationBudgetDivisor: DefaultDurationBudgetDivisor,
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights replaces the scoring weights. A non-positive divisor keeps the default.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.DurationBudgetDivisor <= 0 {
			w.DurationBudgetDivisor = s.weights.DurationBudgetDivisor
		}
		s.weights = w
	}
}

// Input is what a course is scored against.
type Input struct {
	Course model.Course
	// Outstanding holds skill names still to be covered.
	Outstanding map[string]struct{}
	Preferred   skill.Difficulty
	MaxWeeks    int
}

// Result is a scored course.
type Result struct {
	Course    model.Course
	Score     int
	Coverable int      // outstanding skills the course teaches
	Matched   []string // those skills, in course order
}

// Scorer computes course scores. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	weights Weights
}

// New creates a Scorer with the default weights.
func New(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the active weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the score of one course.
func (s *Scorer) Score(in Input) Result {
	res := Result{Course: in.Course}
	seen := make(map[string]struct{}, len(in.Course.Skills))
	for _, name := range in.Course.Skills {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := in.Outstanding[name]; ok {
			res.Coverable++
			res.Matched = append(res.Matched, name)
		}
	}

	score := s.weights.SkillMatch * res.Coverable
	if !in.Preferred.IsAny() {
		if in.Course.Difficulty == in.Preferred {
			score += s.weights.DifficultyBonus
		}
		if skill.Opposite(in.Course.Difficulty, in.Preferred) {
			score -= s.weights.DifficultyPenalty
		}
	}
	// d > max/3 without truncating the budget share.
	if in.Course.DurationWeeks*s.weights.DurationBudgetDivisor > in.MaxWeeks {
		score -= s.weights.DurationPenalty
	}
	res.Score = score
	return res
}

// Rank scores every course and orders them by score, then coverable skills,
// then course id. The catalog is not modified.
func (s *Scorer) Rank(courses []model.Course, outstanding map[string]struct{}, preferred skill.Difficulty, maxWeeks int) []Result {
	out := make([]Result, 0, len(courses))
	for _, c := range courses {
		out = append(out, s.Score(Input{
			Course:      c,
			Outstanding: outstanding,
			Preferred:   preferred,
			MaxWeeks:    maxWeeks,
		}))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Coverable != out[j].Coverable {
			return out[i].Coverable > out[j].Coverable
		}
		return out[i].Course.ID < out[j].Course.ID
	})
	return out
}
