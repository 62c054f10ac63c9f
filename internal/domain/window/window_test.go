package window_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/standards-dev/propdash/internal/domain/window"
)

func TestParsePeriod(t *testing.T) {
	Convey("Given period keywords", t, func() {
		Convey("When parsing recognized keywords", func() {
			for raw, want := range map[string]window.Period{
				"all":     window.PeriodAll,
				"weekly":  window.PeriodWeekly,
				"MONTHLY": window.PeriodMonthly,
				"yearly":  window.PeriodYearly,
				"custom":  window.PeriodCustom,
				"":        window.PeriodAll,
			} {
				p, err := window.ParsePeriod(raw)
				So(err, ShouldBeNil)
				So(p, ShouldEqual, want)
			}
		})

		Convey("When parsing an unrecognized keyword", func() {
			_, err := window.ParsePeriod("fortnightly")

			Convey("Then it should fail rather than silently default", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, window.ErrInvalidWindowSpec), ShouldBeTrue)
			})
		})
	})
}

func TestResolve(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	policy := window.DefaultLookbackPolicy()

	Convey("Given a fixed now", t, func() {
		Convey("When resolving the all period", func() {
			w, strat, err := window.Resolve(window.PeriodAll, window.CustomRange{}, now, policy)

			So(err, ShouldBeNil)
			So(strat, ShouldEqual, window.StrategyRollup)
			So(w.Bounded(), ShouldBeFalse)
		})

		Convey("When resolving the weekly period", func() {
			w, strat, err := window.Resolve(window.PeriodWeekly, window.CustomRange{}, now, policy)

			So(err, ShouldBeNil)
			So(strat, ShouldEqual, window.StrategyTimeline)
			So(w.Start, ShouldEqual, now.Add(-90*24*time.Hour))
			So(w.End, ShouldEqual, now)
		})

		Convey("When resolving the monthly period", func() {
			w, strat, err := window.Resolve(window.PeriodMonthly, window.CustomRange{}, now, policy)

			So(err, ShouldBeNil)
			So(strat, ShouldEqual, window.StrategyTimeline)
			So(w.Start, ShouldEqual, now.Add(-120*24*time.Hour))
		})

		Convey("When resolving the yearly period", func() {
			w, strat, err := window.Resolve(window.PeriodYearly, window.CustomRange{}, now, policy)

			So(err, ShouldBeNil)
			So(strat, ShouldEqual, window.StrategyTimeline)
			So(w.Start, ShouldEqual, now.Add(-365*24*time.Hour))
		})

		Convey("When resolving a custom range", func() {
			custom := window.CustomRange{
				Start: time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC),
				End:   time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			}
			w, strat, err := window.Resolve(window.PeriodCustom, custom, now, policy)

			Convey("Then bounds snap to calendar-month boundaries", func() {
				So(err, ShouldBeNil)
				So(strat, ShouldEqual, window.StrategyTimeline)
				So(w.Start, ShouldEqual, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
				So(w.End, ShouldEqual, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
			})

			Convey("And the last day of the end month stays inside the window", func() {
				So(w.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)), ShouldBeTrue)
				So(w.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)), ShouldBeFalse)
			})
		})

		Convey("When resolving a custom range with missing bounds", func() {
			_, _, err := window.Resolve(window.PeriodCustom, window.CustomRange{}, now, policy)

			So(errors.Is(err, window.ErrInvalidWindowSpec), ShouldBeTrue)
		})

		Convey("When resolving a custom range with inverted bounds", func() {
			custom := window.CustomRange{
				Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			}
			_, _, err := window.Resolve(window.PeriodCustom, custom, now, policy)

			So(errors.Is(err, window.ErrInvalidWindowSpec), ShouldBeTrue)
		})

		Convey("When resolving an unknown period", func() {
			_, _, err := window.Resolve(window.Period("decade"), window.CustomRange{}, now, policy)

			So(errors.Is(err, window.ErrInvalidWindowSpec), ShouldBeTrue)
		})
	})
}

func TestWindowBoundary(t *testing.T) {
	Convey("Given a bounded window", t, func() {
		now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		w, _, err := window.Resolve(window.PeriodWeekly, window.CustomRange{}, now, window.DefaultLookbackPolicy())
		So(err, ShouldBeNil)

		Convey("Then the start is inclusive and the end exclusive", func() {
			So(w.Contains(w.Start), ShouldBeTrue)
			So(w.Contains(w.End), ShouldBeFalse)
			So(w.Contains(w.Start.Add(-time.Nanosecond)), ShouldBeFalse)
			So(w.Contains(w.End.Add(-time.Nanosecond)), ShouldBeTrue)
		})
	})
}

func TestLookbackPolicyDefaults(t *testing.T) {
	Convey("Given a zero-valued policy", t, func() {
		now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

		Convey("When resolving with it", func() {
			w, _, err := window.Resolve(window.PeriodWeekly, window.CustomRange{}, now, window.LookbackPolicy{})

			Convey("Then the stock lookbacks apply", func() {
				So(err, ShouldBeNil)
				So(w.Start, ShouldEqual, now.Add(-window.DefaultWeeklyLookback))
			})
		})
	})
}
