// Package model contains domain models passed between layers.
package model

import "github.com/okian/upskill/internal/domain/skill"

// DefaultMaxDurationWeeks applies when a profile has no duration preference.
const DefaultMaxDurationWeeks = 14

// Preferences captures the learner's scheduling wishes.
type Preferences struct {
	MaxDurationWeeks int              `validate:"gte=0"`
	Difficulty       skill.Difficulty `validate:"omitempty,oneof=Beginner Intermediate Advanced any"`
}

// Profile describes a learner. A skill absent from Skills is at level None.
type Profile struct {
	Skills      map[string]skill.Level `validate:"dive,keys,required,endkeys,gte=0,lte=3"`
	Years       int                    `validate:"gte=0,lte=80"`
	GoalRole    string                 `validate:"required,max=200"`
	Preferences Preferences
}

// Level returns the profile's level for name, None when absent.
func (p Profile) Level(name string) skill.Level {
	return p.Skills[name]
}

// RoleRequirement lists the minimum level per skill for a role.
type RoleRequirement struct {
	Role            string                 `validate:"required"`
	Skills          map[string]skill.Level `validate:"dive,keys,required,endkeys,gte=0,lte=3"`
	ExperienceYears float64                `validate:"gte=0"`
}

// Citation points at supporting material for a course.
type Citation struct {
	SourceID string
	Span     string
	Score    float64
}

// Course is a read-only catalog entry. Skills keep catalog order.
type Course struct {
	ID            string           `validate:"required"`
	Title         string           `validate:"required"`
	Skills        []string         `validate:"required,min=1,dive,required"`
	Difficulty    skill.Difficulty `validate:"required,oneof=Beginner Intermediate Advanced"`
	DurationWeeks int              `validate:"gt=0"`
	Prerequisites []string
	Outcomes      []string
	Description   string
	Rating        float64 `validate:"gte=0,lte=5"`
	Citations     []Citation
}

// SkillGap is the shortfall on one required skill.
type SkillGap struct {
	Skill     string
	Current   skill.Level
	Required  skill.Level
	Magnitude int
	Size      skill.GapSize
}

// PlanItem is a selected course with its justification.
type PlanItem struct {
	Course    Course
	Why       string
	Citations []Citation
}

// Segment occupies weeks Start..End inclusive.
type Segment struct {
	CourseID string
	Start    int
	End      int
}

// Weeks returns the segment length.
func (s Segment) Weeks() int {
	return s.End - s.Start + 1
}

// Timeline is a contiguous schedule starting at week 1.
type Timeline struct {
	Segments   []Segment
	TotalWeeks int
}

// Plan is the engine's output value.
type Plan struct {
	Items          []PlanItem
	Gaps           []SkillGap
	Timeline       Timeline
	CoverageScore  int
	DiversityScore float64
	Notes          []string
	// Generic is set when the goal role was unknown and the fallback was used.
	Generic bool
}
