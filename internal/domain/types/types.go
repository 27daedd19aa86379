// Package types contains the JSON views of domain values shared by the HTTP
// API and its clients.
package types

import (
	"fmt"

	"github.com/okian/upskill/internal/domain/model"
)

const focusSkills = 3

// CourseView is a catalog course.
type CourseView struct {
	CourseID      string   `json:"course_id"`
	Title         string   `json:"title"`
	Skills        []string `json:"skills"`
	Difficulty    string   `json:"difficulty"`
	DurationWeeks int      `json:"duration_weeks"`
	Prerequisites []string `json:"prerequisites"`
	Outcomes      []string `json:"outcomes"`
	Description   string   `json:"description,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
}

// CitationView is provenance attached to a recommendation.
type CitationView struct {
	SourceID string  `json:"source_id"`
	Span     string  `json:"span,omitempty"`
	Score    float64 `json:"score"`
}

// RecommendationView is one selected course.
type RecommendationView struct {
	Course    CourseView     `json:"course"`
	Why       string         `json:"why"`
	Citations []CitationView `json:"citations"`
}

// SkillGapView is one required skill and the learner's shortfall.
type SkillGapView struct {
	Skill         string `json:"skill"`
	CurrentLevel  string `json:"current_level"`
	RequiredLevel string `json:"required_level"`
	Gap           string `json:"gap"`
	Magnitude     int    `json:"magnitude"`
}

// PhaseView is one timeline segment.
type PhaseView struct {
	CourseID  string   `json:"course_id"`
	Course    string   `json:"course"`
	Weeks     string   `json:"weeks"`
	StartWeek int      `json:"start_week"`
	EndWeek   int      `json:"end_week"`
	Focus     []string `json:"focus"`
}

// TimelineView is the schedule of a plan.
type TimelineView struct {
	TotalWeeks int         `json:"total_weeks"`
	Phases     []PhaseView `json:"phases"`
}

// PlanView is the response body of /advise.
type PlanView struct {
	Recommendations []RecommendationView `json:"recommendations"`
	SkillGaps       []SkillGapView       `json:"skill_gaps"`
	Timeline        TimelineView         `json:"timeline"`
	CoverageScore   int                  `json:"coverage_score"`
	DiversityScore  float64              `json:"diversity_score"`
	Notes           []string             `json:"notes"`
	Generic         bool                 `json:"generic"`
}

// RoleView is a role requirement.
type RoleView struct {
	Role            string            `json:"role"`
	RequiredSkills  map[string]string `json:"required_skills"`
	ExperienceYears float64           `json:"experience_years"`
}

// FromCourse converts a catalog course. Slices are never nil.
func FromCourse(c model.Course) CourseView {
	return CourseView{
		CourseID:      c.ID,
		Title:         c.Title,
		Skills:        orEmpty(c.Skills),
		Difficulty:    string(c.Difficulty),
		DurationWeeks: c.DurationWeeks,
		Prerequisites: orEmpty(c.Prerequisites),
		Outcomes:      orEmpty(c.Outcomes),
		Description:   c.Description,
		Rating:        c.Rating,
	}
}

// FromRole converts a role requirement.
func FromRole(r model.RoleRequirement) RoleView {
	skills := make(map[string]string, len(r.Skills))
	for name, lvl := range r.Skills {
		skills[name] = lvl.String()
	}
	return RoleView{Role: r.Role, RequiredSkills: skills, ExperienceYears: r.ExperienceYears}
}

// FromPlan converts a plan. Segments pair with items by position.
func FromPlan(p model.Plan) PlanView {
	v := PlanView{
		Recommendations: make([]RecommendationView, 0, len(p.Items)),
		SkillGaps:       make([]SkillGapView, 0, len(p.Gaps)),
		Timeline: TimelineView{
			TotalWeeks: p.Timeline.TotalWeeks,
			Phases:     make([]PhaseView, 0, len(p.Timeline.Segments)),
		},
		CoverageScore:  p.CoverageScore,
		DiversityScore: p.DiversityScore,
		Notes:          orEmpty(p.Notes),
		Generic:        p.Generic,
	}

	for _, it := range p.Items {
		cites := make([]CitationView, 0, len(it.Citations))
		for _, c := range it.Citations {
			cites = append(cites, CitationView{SourceID: c.SourceID, Span: c.Span, Score: c.Score})
		}
		v.Recommendations = append(v.Recommendations, RecommendationView{
			Course:    FromCourse(it.Course),
			Why:       it.Why,
			Citations: cites,
		})
	}

	for _, g := range p.Gaps {
		v.SkillGaps = append(v.SkillGaps, SkillGapView{
			Skill:         g.Skill,
			CurrentLevel:  g.Current.String(),
			RequiredLevel: g.Required.String(),
			Gap:           g.Size.String(),
			Magnitude:     g.Magnitude,
		})
	}

	for i, s := range p.Timeline.Segments {
		phase := PhaseView{
			CourseID:  s.CourseID,
			Weeks:     fmt.Sprintf("Week %d-%d", s.Start, s.End),
			StartWeek: s.Start,
			EndWeek:   s.End,
			Focus:     []string{},
		}
		if i < len(p.Items) && p.Items[i].Course.ID == s.CourseID {
			c := p.Items[i].Course
			phase.Course = c.Title
			phase.Focus = append(phase.Focus, c.Skills[:min(focusSkills, len(c.Skills))]...)
		}
		v.Timeline.Phases = append(v.Timeline.Phases, phase)
	}
	return v
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
