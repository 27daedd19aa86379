// Package quality scores a plan and attaches advisory notes.
package quality

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/upskill/internal/domain/gap"
	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/skill"
)

// DefaultGenericCoverage is the coverage reported for generic plans.
const DefaultGenericCoverage = 75

// FullCoverage is reported when the role requires nothing.
const FullCoverage = 100

// AdvancedCautionYears is the experience below which Advanced courses get a caution.
const AdvancedCautionYears = 2

const diversityPrecision = 1000

// GenericNote leads the notes of a generic plan.
const GenericNote = "Generic plan created. Please refine your target role for more specific recommendations."

// Coverage is the rounded percentage of gap skills that are already satisfied
// or taught by a selected course. An empty gap set yields FullCoverage.
func Coverage(gaps []model.SkillGap, items []model.PlanItem) int {
	if len(gaps) == 0 {
		return FullCoverage
	}
	taught := make(map[string]struct{})
	for _, it := range items {
		for _, name := range it.Course.Skills {
			taught[name] = struct{}{}
		}
	}
	covered := 0
	for _, g := range gaps {
		if g.Magnitude == 0 {
			covered++
			continue
		}
		if _, ok := taught[g.Skill]; ok {
			covered++
		}
	}
	return int(math.Round(100 * float64(covered) / float64(len(gaps))))
}

// Diversity is distinct skills over total skill slots across the selected
// courses, rounded to three decimals. No slots yields 0.
func Diversity(items []model.PlanItem) float64 {
	slots := 0
	distinct := make(map[string]struct{})
	for _, it := range items {
		for _, name := range it.Course.Skills {
			slots++
			distinct[name] = struct{}{}
		}
	}
	if slots == 0 {
		return 0
	}
	return math.Round(diversityPrecision*float64(len(distinct))/float64(slots)) / diversityPrecision
}

// NotesInput is what the note checks look at.
type NotesInput struct {
	Profile  model.Profile
	Gaps     []model.SkillGap
	Items    []model.PlanItem
	Timeline model.Timeline
	MaxWeeks int
}

// Notes runs the advisory checks in fixed order: large gaps, duration
// overrun, advanced-course caution and the closing encouragement.
func Notes(in NotesInput) []string {
	notes := make([]string, 0, 4)

	if n := gap.CountSize(in.Gaps, skill.GapLarge); n > 0 {
		notes = append(notes, fmt.Sprintf("You have %d major skill gap%s to address for your target role", n, plural(n)))
	}

	if in.MaxWeeks > 0 && in.Timeline.TotalWeeks > in.MaxWeeks {
		over := in.Timeline.TotalWeeks - in.MaxWeeks
		notes = append(notes, fmt.Sprintf(
			"Timeline exceeds your preferred %d weeks by %d week%s. Consider part-time study or prioritizing courses",
			in.MaxWeeks, over, plural(over)))
	}

	if in.Profile.Years < AdvancedCautionYears && hasAdvanced(in.Items) {
		notes = append(notes, "Some advanced courses may be challenging. Consider additional practice time or prerequisites")
	}

	return append(notes, closing(in.Profile))
}

func closing(p model.Profile) string {
	names := make([]string, 0, len(p.Skills))
	for name, lvl := range p.Skills {
		if lvl > skill.None {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "Every course in this plan adds to your foundation and will accelerate your learning journey"
	}
	sort.Strings(names)
	return fmt.Sprintf("Strong foundation in %s will accelerate your learning journey", strings.Join(names, ", "))
}

func hasAdvanced(items []model.PlanItem) bool {
	for _, it := range items {
		if it.Course.Difficulty == skill.AdvancedCourse {
			return true
		}
	}
	return false
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
