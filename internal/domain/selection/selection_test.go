package selection_test

import (
	"testing"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/selection"
	"github.com/okian/upskill/internal/domain/skill"
	. "github.com/smartystreets/goconvey/convey"
)

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

func catalog() []model.Course {
	return []model.Course{
		{ID: "near", Title: "Near", Skills: []string{"Selenium"}, Difficulty: skill.Beginner, DurationWeeks: 2},
		{ID: "both", Title: "Both", Skills: []string{"Test Automation", "API Testing"}, Difficulty: skill.IntermediateCourse, DurationWeeks: 3,
			Citations: []model.Citation{{SourceID: "doc-1", Span: "intro", Score: 0.9}}},
		{ID: "dup", Title: "Dup", Skills: []string{"Test Automation"}, Difficulty: skill.IntermediateCourse, DurationWeeks: 2},
		{ID: "sql", Title: "SQL", Skills: []string{"SQL"}, Difficulty: skill.Beginner, DurationWeeks: 2},
		{ID: "none", Title: "None", Skills: []string{"Cooking"}, Difficulty: skill.Beginner, DurationWeeks: 1},
	}
}

func ids(items []model.PlanItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Course.ID)
	}
	return out
}

func TestSelector_Select(t *testing.T) {
	Convey("Given a selector with the default cap", t, func() {
		sel := selection.New()
		So(sel.Cap(), ShouldEqual, selection.DefaultCourseCap)

		Convey("When several skills are outstanding", func() {
			items := sel.Select(selection.Request{
				Role:        "SDET",
				Catalog:     catalog(),
				Outstanding: set("Test Automation", "API Testing", "Selenium", "SQL"),
				Preferred:   skill.DifficultyAny,
				MaxWeeks:    14,
			})

			Convey("Then the two-skill course leads and redundant courses are skipped", func() {
				So(ids(items), ShouldResemble, []string{"both", "near", "sql"})
			})

			Convey("Then justifications follow the templates", func() {
				So(items[0].Why, ShouldEqual, "Covers Test Automation and API Testing - critical skills for SDET success")
				So(items[1].Why, ShouldEqual, "Essential for mastering Selenium, a key requirement for SDET positions")
			})

			Convey("Then citations pass through as a copy", func() {
				So(items[0].Citations, ShouldResemble, []model.Citation{{SourceID: "doc-1", Span: "intro", Score: 0.9}})
				items[0].Citations[0].Score = 0
				So(catalog()[1].Citations[0].Score, ShouldEqual, 0.9)
				So(items[1].Citations, ShouldBeNil)
			})
		})

		Convey("When nothing is outstanding", func() {
			items := sel.Select(selection.Request{
				Role:      "SDET",
				Catalog:   catalog(),
				Preferred: skill.Beginner,
				MaxWeeks:  14,
			})

			Convey("Then exactly one course is chosen by the bootstrap rule", func() {
				So(len(items), ShouldEqual, 1)
				So(items[0].Why, ShouldEqual, "Provides foundational knowledge essential for SDET")
			})
		})

		Convey("When the catalog is empty", func() {
			items := sel.Select(selection.Request{Role: "SDET", Outstanding: set("SQL"), MaxWeeks: 14})
			So(items, ShouldNotBeNil)
			So(items, ShouldBeEmpty)
		})
	})

	Convey("Given a cap of one", t, func() {
		sel := selection.New(selection.WithCap(1), selection.WithCap(0))

		Convey("Then only the top course is returned", func() {
			items := sel.Select(selection.Request{
				Role:        "SDET",
				Catalog:     catalog(),
				Outstanding: set("Test Automation", "API Testing", "Selenium", "SQL"),
				MaxWeeks:    14,
			})
			So(ids(items), ShouldResemble, []string{"both"})
		})
	})
}

func TestSelector_Generic(t *testing.T) {
	Convey("Given a catalog larger than the cap", t, func() {
		sel := selection.New()
		items := sel.Generic("Astronaut", catalog())

		Convey("Then the first courses in catalog order are chosen", func() {
			So(ids(items), ShouldResemble, []string{"near", "both", "dup"})
			for _, it := range items {
				So(it.Why, ShouldEqual, "Builds essential skills for Astronaut and enhances your technical capabilities")
			}
		})
	})

	Convey("Given a catalog smaller than the cap", t, func() {
		items := selection.New().Generic("Astronaut", catalog()[:1])
		So(len(items), ShouldEqual, 1)
	})
}

func TestJustify(t *testing.T) {
	Convey("Given more than two matched skills", t, func() {
		why := selection.Justify("QA", []string{"A", "B", "C"})
		So(why, ShouldEqual, "Covers A and B - critical skills for QA success")
	})
}
