package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/upskill/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.CourseCap, convey.ShouldEqual, 3)
				convey.So(cfg.PlanCacheSize, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("UPSKILL_ADDR", ":8080")
			t.Setenv("UPSKILL_COURSE_CAP", "5")
			t.Setenv("UPSKILL_SKILL_MATCH_WEIGHT", "12")
			t.Setenv("UPSKILL_LOG_FORMAT", "json")
			t.Setenv("UPSKILL_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CourseCap, convey.ShouldEqual, 5)
				convey.So(cfg.SkillMatchWeight, convey.ShouldEqual, 12)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars(t)
			path := writeConfigFile(t, `
addr: ":9090"
course_cap: 4
default_max_weeks: 10
generic_coverage: 60
unrated_skill_level: basic
catalog_path: /etc/upskill/catalog.yaml
`)
			t.Setenv("UPSKILL_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CourseCap, convey.ShouldEqual, 4)
				convey.So(cfg.DefaultMaxWeeks, convey.ShouldEqual, 10)
				convey.So(cfg.GenericCoverage, convey.ShouldEqual, 60)
				convey.So(cfg.UnratedSkillLevel, convey.ShouldEqual, "basic")
				convey.So(cfg.CatalogPath, convey.ShouldEqual, "/etc/upskill/catalog.yaml")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 20)
			})

			convey.Convey("And env overrides the file", func() {
				t.Setenv("UPSKILL_COURSE_CAP", "2")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CourseCap, convey.ShouldEqual, 2)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars(t)
			t.Setenv("UPSKILL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			clearConfigEnvVars(t)
			t.Setenv("UPSKILL_GENERIC_COVERAGE", "150")

			_, err := config.Load(ctx)

			convey.Convey("Then an invalid config error is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				if name := kv[:i]; len(name) > len(config.EnvPrefix) && name[:len(config.EnvPrefix)] == config.EnvPrefix {
					t.Setenv(name, "")
					_ = os.Unsetenv(name)
				}
				break
			}
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
