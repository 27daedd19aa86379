package plancache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/upskill/internal/adapters/plancache"
	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/skill"
	. "github.com/smartystreets/goconvey/convey"
)

func profile(role string) model.Profile {
	return model.Profile{
		GoalRole: role,
		Years:    2,
		Skills:   map[string]skill.Level{"Selenium": skill.Intermediate, "SQL": skill.Basic},
	}
}

func plan(coverage int) model.Plan {
	return model.Plan{CoverageScore: coverage, Notes: []string{fmt.Sprint(coverage)}}
}

func TestKeyFor(t *testing.T) {
	Convey("Given two equal profiles", t, func() {
		a := profile("SDET")
		b := model.Profile{
			GoalRole: " SDET ",
			Years:    2,
			Skills:   map[string]skill.Level{"SQL": skill.Basic, "Selenium": skill.Intermediate},
		}

		Convey("Then their keys match", func() {
			So(plancache.KeyFor(a), ShouldResemble, plancache.KeyFor(b))
			So(plancache.KeyFor(a).String(), ShouldNotBeEmpty)
		})

		Convey("When any planning input differs", func() {
			base := plancache.KeyFor(a)
			c := profile("SDET")
			c.Preferences.MaxDurationWeeks = 4
			So(plancache.KeyFor(c).Hash(), ShouldNotEqual, base.Hash())

			d := profile("SDET")
			d.Skills["SQL"] = skill.Advanced
			So(plancache.KeyFor(d).Hash(), ShouldNotEqual, base.Hash())

			e := profile("sdet")
			So(plancache.KeyFor(e).Hash(), ShouldNotEqual, base.Hash())
		})
	})
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new cache", t, func() {
		c := plancache.New()
		So(c.Size(), ShouldEqual, 0)

		Convey("When a plan is stored", func() {
			key := plancache.KeyFor(profile("SDET"))
			c.Put(ctx, key, plan(63))

			Convey("Then it can be read back", func() {
				got, ok := c.Get(ctx, key)
				So(ok, ShouldBeTrue)
				So(got.CoverageScore, ShouldEqual, 63)
				So(c.Size(), ShouldEqual, 1)
			})

			Convey("And stored again under the same key", func() {
				c.Put(ctx, key, plan(70))

				Convey("Then it is replaced, not duplicated", func() {
					got, _ := c.Get(ctx, key)
					So(got.CoverageScore, ShouldEqual, 70)
					So(c.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the cache is purged", func() {
				c.Purge(ctx)
				_, ok := c.Get(ctx, key)
				So(ok, ShouldBeFalse)
				So(c.Size(), ShouldEqual, 0)
			})
		})

		Convey("When reading an unknown key", func() {
			_, ok := c.Get(ctx, plancache.KeyFor(profile("Nobody")))
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a cache of two", t, func() {
		c := plancache.New(plancache.WithMaxSize(2))
		a := plancache.KeyFor(profile("A"))
		b := plancache.KeyFor(profile("B"))
		d := plancache.KeyFor(profile("D"))

		Convey("When a third plan arrives after the first was read", func() {
			c.Put(ctx, a, plan(1))
			c.Put(ctx, b, plan(2))
			_, _ = c.Get(ctx, a)
			c.Put(ctx, d, plan(3))

			Convey("Then the least recently used entry is evicted", func() {
				_, okA := c.Get(ctx, a)
				_, okB := c.Get(ctx, b)
				_, okD := c.Get(ctx, d)
				So(okA, ShouldBeTrue)
				So(okB, ShouldBeFalse)
				So(okD, ShouldBeTrue)
				So(c.Size(), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a cache of one", t, func() {
		c := plancache.New(plancache.WithMaxSize(1))
		for i := 0; i < 5; i++ {
			c.Put(ctx, plancache.KeyFor(profile(fmt.Sprint(i))), plan(i))
		}
		So(c.Size(), ShouldEqual, 1)
		got, ok := c.Get(ctx, plancache.KeyFor(profile("4")))
		So(ok, ShouldBeTrue)
		So(got.CoverageScore, ShouldEqual, 4)
	})

	Convey("Given a disabled cache", t, func() {
		c := plancache.New(plancache.WithMaxSize(0))
		key := plancache.KeyFor(profile("SDET"))
		c.Put(ctx, key, plan(1))
		_, ok := c.Get(ctx, key)
		So(ok, ShouldBeFalse)
		So(c.Size(), ShouldEqual, 0)
	})
}

func TestCacheConcurrency(t *testing.T) {
	Convey("Given a cache shared by goroutines", t, func() {
		ctx := context.Background()
		c := plancache.New(plancache.WithMaxSize(64))

		Convey("When many goroutines read and write", func() {
			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < 200; i++ {
						key := plancache.KeyFor(profile(fmt.Sprintf("role-%d-%d", g, i%80)))
						c.Put(ctx, key, plan(i))
						_, _ = c.Get(ctx, key)
					}
				}(g)
			}
			wg.Wait()

			Convey("Then the bound holds", func() {
				So(c.Size(), ShouldBeLessThanOrEqualTo, 64)
				So(c.Size(), ShouldBeGreaterThan, 0)
			})
		})
	})
}
