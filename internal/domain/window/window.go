// Package window resolves a requested period into a concrete time boundary
// and selects the aggregation strategy that can answer it.
package window

import (
	"fmt"
	"strings"
	"time"

	"github.com/standards-dev/propdash/internal/domain/model"
)

// Period is a requested ranking period keyword.
type Period string

// Recognized period keywords.
const (
	PeriodAll     Period = "all"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodCustom  Period = "custom"
)

// Strategy selects how windowed counts are produced.
type Strategy int

const (
	// StrategyRollup reads precomputed lifetime totals directly. Only valid
	// for unbounded windows; lifetime totals cannot answer bounded ones.
	StrategyRollup Strategy = iota
	// StrategyTimeline re-derives counts by filtering the bounded recent
	// timeline by timestamp.
	StrategyTimeline
)

func (s Strategy) String() string {
	if s == StrategyRollup {
		return "rollup"
	}
	return "timeline"
}

// Default slack lookbacks. The weekly and monthly windows are intentionally
// wider than their labels: the event stream is sparse and a literal 7-day
// window frequently ranks nobody. The slack values are a documented policy
// knob, not hidden semantics.
const (
	DefaultWeeklyLookback  = 90 * 24 * time.Hour
	DefaultMonthlyLookback = 120 * 24 * time.Hour
	DefaultYearlyLookback  = 365 * 24 * time.Hour
)

// LookbackPolicy fixes the lookback durations for the relative periods.
type LookbackPolicy struct {
	Weekly  time.Duration
	Monthly time.Duration
	Yearly  time.Duration
}

// DefaultLookbackPolicy returns the stock slack-window policy.
func DefaultLookbackPolicy() LookbackPolicy {
	return LookbackPolicy{
		Weekly:  DefaultWeeklyLookback,
		Monthly: DefaultMonthlyLookback,
		Yearly:  DefaultYearlyLookback,
	}
}

func (p LookbackPolicy) normalized() LookbackPolicy {
	d := DefaultLookbackPolicy()
	if p.Weekly <= 0 {
		p.Weekly = d.Weekly
	}
	if p.Monthly <= 0 {
		p.Monthly = d.Monthly
	}
	if p.Yearly <= 0 {
		p.Yearly = d.Yearly
	}
	return p
}

// CustomRange carries the bounds of a custom period request, at
// calendar-month granularity.
type CustomRange struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod validates a period keyword. Unrecognized keywords are an
// error, never a silent default.
func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodAll, Period(""):
		return PeriodAll, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	case PeriodYearly:
		return PeriodYearly, nil
	case PeriodCustom:
		return PeriodCustom, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", ErrInvalidWindowSpec, raw)
}

// Resolve translates a period into a TimeWindow and the strategy able to
// answer it. Every bounded period uses the timeline strategy; only "all"
// reads lifetime rollups. The window is resolved exactly once per request
// so all leaderboards of that request share one "now".
func Resolve(period Period, custom CustomRange, now time.Time, policy LookbackPolicy) (model.TimeWindow, Strategy, error) {
	policy = policy.normalized()

	switch period {
	case PeriodAll:
		return model.TimeWindow{}, StrategyRollup, nil
	case PeriodWeekly:
		return model.TimeWindow{Start: now.Add(-policy.Weekly), End: now}, StrategyTimeline, nil
	case PeriodMonthly:
		return model.TimeWindow{Start: now.Add(-policy.Monthly), End: now}, StrategyTimeline, nil
	case PeriodYearly:
		return model.TimeWindow{Start: now.Add(-policy.Yearly), End: now}, StrategyTimeline, nil
	case PeriodCustom:
		w, err := resolveCustom(custom)
		if err != nil {
			return model.TimeWindow{}, 0, err
		}
		return w, StrategyTimeline, nil
	}
	return model.TimeWindow{}, 0, fmt.Errorf("%w: unknown period %q", ErrInvalidWindowSpec, period)
}

// resolveCustom normalizes custom bounds to calendar-month boundaries:
// the start is forced to the first of its month and the end to the first of
// the following month, so the half-open window covers the end month fully.
func resolveCustom(custom CustomRange) (model.TimeWindow, error) {
	if custom.Start.IsZero() || custom.End.IsZero() {
		return model.TimeWindow{}, fmt.Errorf("%w: custom period requires start and end dates", ErrInvalidWindowSpec)
	}
	start := monthStart(custom.Start)
	end := monthStart(custom.End).AddDate(0, 1, 0)
	if !start.Before(end) {
		return model.TimeWindow{}, fmt.Errorf("%w: custom range start %s is after end %s",
			ErrInvalidWindowSpec, custom.Start.Format("2006-01"), custom.End.Format("2006-01"))
	}
	return model.TimeWindow{Start: start, End: end}, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
