// Package selection picks a small, non-redundant set of courses for a plan.
package selection

import (
	"fmt"
	"strings"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/scoring"
	"github.com/okian/upskill/internal/domain/skill"
)

// DefaultCourseCap bounds the number of courses in a plan.
const DefaultCourseCap = 3

// Request carries everything a targeted selection needs.
type Request struct {
	Role        string
	Catalog     []model.Course
	Outstanding map[string]struct{}
	Preferred   skill.Difficulty
	MaxWeeks    int
}

// Selector performs greedy max-coverage selection with a cardinality cap.
type Selector struct {
	limit  int
	scorer *scoring.Scorer
}

// New creates a Selector with the default cap and scorer.
func New(opts ...Option) *Selector {
	s := &Selector{
		limit:  DefaultCourseCap,
		scorer: scoring.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cap returns the configured course cap.
func (s *Selector) Cap() int {
	return s.limit
}

// Select ranks the catalog once and walks it in order. A course is taken when
// it teaches an outstanding skill no earlier pick covers, or unconditionally
// when nothing has been picked yet. Earlier picks are never revisited.
func (s *Selector) Select(req Request) []model.PlanItem {
	ranked := s.scorer.Rank(req.Catalog, req.Outstanding, req.Preferred, req.MaxWeeks)
	items := make([]model.PlanItem, 0, min(s.limit, len(ranked)))
	covered := make(map[string]struct{}, len(req.Outstanding))

	for _, r := range ranked {
		if len(items) >= s.limit {
			break
		}
		fresh := 0
		for _, name := range r.Matched {
			if _, ok := covered[name]; !ok {
				fresh++
			}
		}
		if fresh == 0 && len(items) > 0 {
			continue
		}
		for _, name := range r.Matched {
			covered[name] = struct{}{}
		}
		items = append(items, newItem(r.Course, Justify(req.Role, r.Matched)))
	}
	return items
}

// Generic takes the first catalog courses in catalog order, without scoring.
func (s *Selector) Generic(role string, catalog []model.Course) []model.PlanItem {
	n := min(s.limit, len(catalog))
	items := make([]model.PlanItem, 0, n)
	for _, c := range catalog[:n] {
		items = append(items, newItem(c, GenericJustification(role)))
	}
	return items
}

// Justify renders the reason a course was chosen from the outstanding skills it teaches.
func Justify(role string, matched []string) string {
	switch len(matched) {
	case 0:
		return fmt.Sprintf("Provides foundational knowledge essential for %s", role)
	case 1:
		return fmt.Sprintf("Essential for mastering %s, a key requirement for %s positions", matched[0], role)
	default:
		return fmt.Sprintf("Covers %s - critical skills for %s success", strings.Join(matched[:2], " and "), role)
	}
}

// GenericJustification is the reason given for every generic-plan course.
func GenericJustification(role string) string {
	return fmt.Sprintf("Builds essential skills for %s and enhances your technical capabilities", role)
}

func newItem(c model.Course, why string) model.PlanItem {
	var cites []model.Citation
	if len(c.Citations) > 0 {
		cites = make([]model.Citation, len(c.Citations))
		copy(cites, c.Citations)
	}
	return model.PlanItem{Course: c, Why: why, Citations: cites}
}
