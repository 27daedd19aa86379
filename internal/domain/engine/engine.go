// Package engine turns a learner profile into an upskilling plan.
//
// The engine is a pure function of its inputs. Role requirements and the
// course catalog are passed in read-only on every call, so one Engine can
// serve concurrent callers without locking.
package engine

import (
	"strings"

	"github.com/okian/upskill/internal/domain/gap"
	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/quality"
	"github.com/okian/upskill/internal/domain/scoring"
	"github.com/okian/upskill/internal/domain/selection"
	"github.com/okian/upskill/internal/domain/skill"
	"github.com/okian/upskill/internal/domain/timeline"
)

// RoleLookup resolves a goal role to its requirements.
type RoleLookup interface {
	// Role matches name case-insensitively.
	Role(name string) (model.RoleRequirement, bool)
}

// RoleTable is an in-memory RoleLookup.
type RoleTable []model.RoleRequirement

// Role implements RoleLookup.
func (t RoleTable) Role(name string) (model.RoleRequirement, bool) {
	name = strings.TrimSpace(name)
	for _, r := range t {
		if strings.EqualFold(r.Role, name) {
			return r, true
		}
	}
	return model.RoleRequirement{}, false
}

// Engine builds plans.
type Engine struct {
	courseCap         int
	weights           *scoring.Weights
	defaultMaxWeeks   int
	genericCoverage   int
	defaultDifficulty skill.Difficulty

	selector *selection.Selector
}

// New creates an Engine with reference defaults.
func New(opts ...Option) *Engine {
	e := &Engine{
		courseCap:         selection.DefaultCourseCap,
		defaultMaxWeeks:   model.DefaultMaxDurationWeeks,
		genericCoverage:   quality.DefaultGenericCoverage,
		defaultDifficulty: skill.DifficultyAny,
	}
	for _, opt := range opts {
		opt(e)
	}

	var scorerOpts []scoring.Option
	if e.weights != nil {
		scorerOpts = append(scorerOpts, scoring.WithWeights(*e.weights))
	}
	e.selector = selection.New(
		selection.WithCap(e.courseCap),
		selection.WithScorer(scoring.New(scorerOpts...)),
	)
	return e
}

// CourseCap returns the configured course cap.
func (e *Engine) CourseCap() int {
	return e.courseCap
}

// Plan computes a plan for profile. An unknown goal role takes the generic
// path instead of failing. Input validation is the caller's job.
func (e *Engine) Plan(profile model.Profile, roles RoleLookup, catalog []model.Course) model.Plan {
	maxWeeks := profile.Preferences.MaxDurationWeeks
	if maxWeeks <= 0 {
		maxWeeks = e.defaultMaxWeeks
	}
	preferred := profile.Preferences.Difficulty
	if preferred.IsAny() {
		preferred = e.defaultDifficulty
	}
	role := strings.TrimSpace(profile.GoalRole)

	var (
		req   model.RoleRequirement
		found bool
	)
	if roles != nil {
		req, found = roles.Role(role)
	}
	if !found {
		return e.generic(role, catalog)
	}

	gaps := gap.Calculate(profile, req)
	items := e.selector.Select(selection.Request{
		Role:        role,
		Catalog:     catalog,
		Outstanding: gap.Outstanding(gaps),
		Preferred:   preferred,
		MaxWeeks:    maxWeeks,
	})
	tl := timeline.Build(items)

	coverage := 0
	if len(items) > 0 {
		coverage = quality.Coverage(gaps, items)
	}

	return model.Plan{
		Items:          items,
		Gaps:           gaps,
		Timeline:       tl,
		CoverageScore:  coverage,
		DiversityScore: quality.Diversity(items),
		Notes: quality.Notes(quality.NotesInput{
			Profile:  profile,
			Gaps:     gaps,
			Items:    items,
			Timeline: tl,
			MaxWeeks: maxWeeks,
		}),
	}
}

// generic builds the fallback plan. Its only note is GenericNote: without a
// role there are no gaps to count and no skills to name.
func (e *Engine) generic(role string, catalog []model.Course) model.Plan {
	items := e.selector.Generic(role, catalog)
	tl := timeline.Build(items)

	coverage := e.genericCoverage
	if len(items) == 0 {
		coverage = 0
	}

	return model.Plan{
		Items:          items,
		Gaps:           []model.SkillGap{},
		Timeline:       tl,
		CoverageScore:  coverage,
		DiversityScore: quality.Diversity(items),
		Notes:          []string{quality.GenericNote},
		Generic:        true,
	}
}
