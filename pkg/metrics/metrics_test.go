package metrics

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("planner"),
				WithMetricPrefix("v2"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithRefreshInterval(time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			m.RecordPlan(PathTargeted, 3*time.Millisecond, 63, 0.9, 3)

			Convey("Then names carry namespace, subsystem and prefix", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, mf := range families {
					So(strings.HasPrefix(mf.GetName(), "test_planner_v2_"), ShouldBeTrue)
					if mf.GetName() == "test_planner_v2_plans_generated_total" {
						found = true
						So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})

			Convey("Then options are applied", func() {
				So(m.refreshInterval, ShouldEqual, time.Second)
				So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
			})
		})

		Convey("When the same registry is reused with another namespace", func() {
			So(func() {
				NewManager(WithPrometheusRegistry(registry), WithNamespace("one"))
				NewManager(WithPrometheusRegistry(registry), WithNamespace("two"))
			}, ShouldNotPanic)
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When plans and cache lookups are recorded", func() {
			m.RecordPlan(PathTargeted, time.Millisecond, 100, 1, 3)
			m.RecordPlan(PathGeneric, time.Millisecond, 75, 1, 3)
			m.RecordPlan(PathGeneric, time.Millisecond, 75, 1, 3)
			m.RecordCacheLookup(true)
			m.RecordCacheLookup(false)
			m.RecordCacheLookup(false)

			Convey("Then counters reflect them by label", func() {
				So(testutil.ToFloat64(m.plansGenerated.WithLabelValues(PathTargeted)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.plansGenerated.WithLabelValues(PathGeneric)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.planCache.WithLabelValues("hit")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.planCache.WithLabelValues("miss")), ShouldEqual, 2)
			})
		})

		Convey("When system metrics are sampled", func() {
			runtime.GC()
			m.CollectSystem()

			Convey("Then gauges are populated", func() {
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldBeGreaterThan, 0)
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldBeGreaterThan, 0)
				So(m.lastNumGC, ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
		m.RecordPlan(PathTargeted, time.Millisecond, 100, 1, 3)
		m.RecordCacheLookup(true)

		Convey("Then nothing is recorded", func() {
			So(testutil.ToFloat64(m.plansGenerated.WithLabelValues(PathTargeted)), ShouldEqual, 0)
			So(testutil.ToFloat64(m.planCache.WithLabelValues("hit")), ShouldEqual, 0)
		})
	})
}

func TestGlobalFunctions(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through package functions", func() {
			before := testutil.ToFloat64(globalManager.validationFailures)
			RecordValidationFailure()
			RecordUnsafeInput()
			RecordBatchSize(4)
			UpdateCatalogSize(8, 4)
			RecordHTTPRequest("/advise", "POST", "200")
			RecordHTTPRequestDuration("/advise", "POST", "200", 1.5)
			RecordErrorByComponent("http", "validation")
			RecordErrorByType("validation", "low")
			RecordErrorByEndpoint("/advise", "POST", "validation")

			Convey("Then the shared registry sees them", func() {
				So(testutil.ToFloat64(globalManager.validationFailures), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.catalogCourses), ShouldEqual, 8)
				So(testutil.ToFloat64(globalManager.catalogRoles), ShouldEqual, 4)
				So(GetRegistry(), ShouldNotBeNil)
			})
		})

		Convey("When the system collector runs until cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				RunSystemCollector(ctx)
				close(done)
			}()
			cancel()

			Convey("Then it stops", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("collector did not stop")
				}
			})
		})
	})
}
