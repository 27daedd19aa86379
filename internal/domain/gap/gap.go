// Package gap computes a learner's per-skill shortfall against a role.
package gap

import (
	"sort"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/skill"
)

// Calculate returns one SkillGap per required skill, largest gap first and
// ties by skill name. Profile skills the role does not list are ignored.
// Skill names match exactly, so "go" does not satisfy "Go".
func Calculate(profile model.Profile, role model.RoleRequirement) []model.SkillGap {
	if len(role.Skills) == 0 {
		return []model.SkillGap{}
	}

	gaps := make([]model.SkillGap, 0, len(role.Skills))
	for name, required := range role.Skills {
		current := profile.Skills[name]
		magnitude := int(required) - int(current)
		if magnitude < 0 {
			magnitude = 0
		}
		gaps = append(gaps, model.SkillGap{
			Skill:     name,
			Current:   current,
			Required:  required,
			Magnitude: magnitude,
			Size:      skill.BucketGap(magnitude),
		})
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Magnitude != gaps[j].Magnitude {
			return gaps[i].Magnitude > gaps[j].Magnitude
		}
		return gaps[i].Skill < gaps[j].Skill
	})
	return gaps
}

// Outstanding returns the names of skills with a positive gap.
func Outstanding(gaps []model.SkillGap) map[string]struct{} {
	out := make(map[string]struct{}, len(gaps))
	for _, g := range gaps {
		if g.Magnitude > 0 {
			out[g.Skill] = struct{}{}
		}
	}
	return out
}

// CountSize counts gaps in the given bucket.
func CountSize(gaps []model.SkillGap, size skill.GapSize) int {
	n := 0
	for _, g := range gaps {
		if g.Size == size {
			n++
		}
	}
	return n
}
