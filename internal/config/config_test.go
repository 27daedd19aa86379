package config_test

import (
	"errors"
	"testing"

	"github.com/okian/upskill/internal/config"
	"github.com/okian/upskill/internal/domain/scoring"
	"github.com/okian/upskill/internal/domain/skill"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have the reference defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.CourseCap, convey.ShouldEqual, 3)
			convey.So(cfg.DefaultMaxWeeks, convey.ShouldEqual, 14)
			convey.So(cfg.GenericCoverage, convey.ShouldEqual, 75)
			convey.So(cfg.Weights(), convey.ShouldResemble, scoring.DefaultWeights())
			convey.So(len(cfg.CORSAllowedOrigins), convey.ShouldEqual, 4)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the unrated level is Intermediate", func() {
			lvl, err := cfg.UnratedLevel()
			convey.So(err, convey.ShouldBeNil)
			convey.So(lvl, convey.ShouldEqual, skill.Intermediate)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		mutations := map[string]func(*config.Config){
			"empty addr":       func(c *config.Config) { c.Addr = "" },
			"zero cap":         func(c *config.Config) { c.CourseCap = 0 },
			"zero weeks":       func(c *config.Config) { c.DefaultMaxWeeks = 0 },
			"zero divisor":     func(c *config.Config) { c.DurationBudgetDivisor = 0 },
			"coverage too big": func(c *config.Config) { c.GenericCoverage = 101 },
			"negative batch":   func(c *config.Config) { c.MaxBatchSize = -1 },
			"no rate window":   func(c *config.Config) { c.RateLimitWindowSec = 0 },
			"no body limit":    func(c *config.Config) { c.MaxBodyBytes = 0 },
			"unknown level":    func(c *config.Config) { c.UnratedSkillLevel = "guru" },
		}

		for name, mutate := range mutations {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.Printf("%s rejected\n", name)
		}
	})
}
