package gap_test

import (
	"testing"

	"github.com/okian/upskill/internal/domain/gap"
	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/skill"
	. "github.com/smartystreets/goconvey/convey"
)

func sdet() model.RoleRequirement {
	return model.RoleRequirement{
		Role: "SDET",
		Skills: map[string]skill.Level{
			"Test Automation": skill.Advanced,
			"Selenium":        skill.Advanced,
			"API Testing":     skill.Intermediate,
			"CI/CD":           skill.Intermediate,
		},
	}
}

func TestCalculate(t *testing.T) {
	Convey("Given a profile with intermediate Selenium and an SDET role", t, func() {
		profile := model.Profile{
			Skills:   map[string]skill.Level{"Selenium": skill.Intermediate, "Cooking": skill.Advanced},
			GoalRole: "SDET",
		}

		Convey("When calculating gaps", func() {
			gaps := gap.Calculate(profile, sdet())

			Convey("Then every required skill appears once, largest gap first", func() {
				So(len(gaps), ShouldEqual, 4)
				So(gaps[0].Skill, ShouldEqual, "Test Automation")
				So(gaps[0].Magnitude, ShouldEqual, 3)
				So(gaps[0].Size, ShouldEqual, skill.GapLarge)
				So(gaps[1].Skill, ShouldEqual, "API Testing")
				So(gaps[2].Skill, ShouldEqual, "CI/CD")
				So(gaps[1].Magnitude, ShouldEqual, 2)
				So(gaps[2].Magnitude, ShouldEqual, 2)
			})

			Convey("Then Selenium is a small gap", func() {
				So(gaps[3].Skill, ShouldEqual, "Selenium")
				So(gaps[3].Current, ShouldEqual, skill.Intermediate)
				So(gaps[3].Magnitude, ShouldEqual, 1)
				So(gaps[3].Size, ShouldEqual, skill.GapSmall)
			})

			Convey("Then unrequired skills are ignored", func() {
				for _, g := range gaps {
					So(g.Skill, ShouldNotEqual, "Cooking")
				}
			})
		})
	})

	Convey("Given a profile that exceeds every requirement", t, func() {
		profile := model.Profile{Skills: map[string]skill.Level{
			"Test Automation": skill.Advanced,
			"Selenium":        skill.Advanced,
			"API Testing":     skill.Advanced,
			"CI/CD":           skill.Advanced,
		}}

		Convey("Then all gaps are zero and nothing is outstanding", func() {
			gaps := gap.Calculate(profile, sdet())
			So(len(gaps), ShouldEqual, 4)
			for _, g := range gaps {
				So(g.Magnitude, ShouldEqual, 0)
				So(g.Size, ShouldEqual, skill.GapNone)
			}
			So(gap.Outstanding(gaps), ShouldBeEmpty)
		})
	})

	Convey("Given skill names that differ only in case", t, func() {
		role := model.RoleRequirement{Role: "R", Skills: map[string]skill.Level{
			"Go": skill.Advanced,
			"go": skill.Basic,
		}}
		profile := model.Profile{Skills: map[string]skill.Level{"go": skill.Advanced}}

		Convey("When calculating gaps", func() {
			gaps := gap.Calculate(profile, role)

			Convey("Then only the exact name is satisfied", func() {
				So(len(gaps), ShouldEqual, 2)
				So(gaps[0].Skill, ShouldEqual, "Go")
				So(gaps[0].Current, ShouldEqual, skill.None)
				So(gaps[0].Magnitude, ShouldEqual, 3)
				So(gaps[0].Size, ShouldEqual, skill.GapLarge)
				So(gaps[1].Skill, ShouldEqual, "go")
				So(gaps[1].Magnitude, ShouldEqual, 0)
			})

			Convey("Then the outstanding set keeps the exact spelling", func() {
				out := gap.Outstanding(gaps)
				So(out, ShouldContainKey, "Go")
				So(out, ShouldNotContainKey, "go")
			})
		})
	})

	Convey("Given an empty role requirement", t, func() {
		gaps := gap.Calculate(model.Profile{}, model.RoleRequirement{Role: "x"})
		So(gaps, ShouldNotBeNil)
		So(gaps, ShouldBeEmpty)
	})

	Convey("Given an empty profile", t, func() {
		gaps := gap.Calculate(model.Profile{}, sdet())

		Convey("Then every skill is outstanding at its full requirement", func() {
			So(gap.CountSize(gaps, skill.GapLarge), ShouldEqual, 2)
			So(gap.CountSize(gaps, skill.GapMedium), ShouldEqual, 2)
			out := gap.Outstanding(gaps)
			So(len(out), ShouldEqual, 4)
			So(out, ShouldContainKey, "Test Automation")
		})
	})
}
