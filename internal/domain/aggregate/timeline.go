package aggregate

import (
	"context"
	"fmt"

	"github.com/standards-dev/propdash/internal/domain/model"
	"github.com/standards-dev/propdash/internal/domain/normalize"
)

// TimelineStrategy answers bounded queries by re-deriving counts from each
// contributor's recent timeline. Lifetime totals answer "how active has this
// person ever been", which is the wrong answer for "how active were they
// this window" — so counts are rebuilt from raw events every time.
//
// This is a full scan of every contributor's timeline per request. Fine at
// the current scale (low thousands of contributors, bounded timelines); it
// is the first thing to optimize if scale grows, e.g. by pre-bucketing
// events per week at ingestion time.
type TimelineStrategy struct{}

// Collect filters each timeline to the window (start inclusive, end
// exclusive) and counts occurrences per activity kind. Contributors with no
// matching events are absent from the result, not present with zeroes.
func (TimelineStrategy) Collect(ctx context.Context, src Source, q Query) ([]model.Candidate, error) {
	docs, err := src.ListRollups(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline strategy: %w", err)
	}

	var candidates []model.Candidate
	for _, doc := range docs {
		rollup, err := normalize.DecodeRollup(doc)
		if err != nil {
			return nil, fmt.Errorf("timeline strategy: %w", err)
		}
		metrics, matched := MetricsForWindow(rollup.Timeline, q)
		if matched == 0 {
			continue
		}
		candidates = append(candidates, model.Candidate{Rollup: rollup, Metrics: metrics})
	}
	return candidates, nil
}

// MetricsForWindow tallies timeline events inside the window, honoring the
// repository filter, and reports how many events matched. The timeline's
// order is not trusted; every event is checked against the boundary.
func MetricsForWindow(timeline []model.ActivityEvent, q Query) (model.ContributorMetrics, int) {
	var t model.Totals
	matched := 0
	for _, ev := range timeline {
		if !q.Window.Contains(ev.TS) {
			continue
		}
		if q.Repo != "" && ev.Repo != q.Repo {
			continue
		}
		matched++
		switch ev.Kind {
		case model.KindCommit:
			t.Commits++
		case model.KindPROpened:
			t.PRsOpened++
		case model.KindPRMerged:
			t.PRsMerged++
		case model.KindPRClosed:
			t.PRsClosed++
		case model.KindReview:
			t.Reviews++
		case model.KindComment:
			t.Comments++
		case model.KindIssueOpened:
			t.IssuesOpened++
		}
	}
	return normalize.MetricsFromTotals(t), matched
}
