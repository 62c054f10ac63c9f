package aggregate

import (
	"context"
	"fmt"

	"github.com/standards-dev/propdash/internal/domain/model"
	"github.com/standards-dev/propdash/internal/domain/normalize"
)

// RollupStrategy answers unbounded ("all time") queries by reading lifetime
// totals verbatim. Contributors with all-zero totals remain in the candidate
// set; they rank at the bottom rather than disappearing.
type RollupStrategy struct{}

// Collect reads every rollup and maps lifetime totals to canonical metrics.
//
// When a repository filter is set, eligibility is approximated from the
// bounded recent timeline: a contributor qualifies if at least one timeline
// event touches the repository. Lifetime totals are not partitioned by
// repository in the store, so activity that predates the timeline's
// retention can be over- or under-counted. That precision gap is inherent
// to the stored data; inventing partitioned totals here would be worse.
func (RollupStrategy) Collect(ctx context.Context, src Source, q Query) ([]model.Candidate, error) {
	docs, err := src.ListRollups(ctx)
	if err != nil {
		return nil, fmt.Errorf("rollup strategy: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(docs))
	for _, doc := range docs {
		rollup, err := normalize.DecodeRollup(doc)
		if err != nil {
			return nil, fmt.Errorf("rollup strategy: %w", err)
		}
		if q.Repo != "" && !timelineTouchesRepo(rollup.Timeline, q.Repo) {
			continue
		}
		candidates = append(candidates, model.Candidate{
			Rollup:  rollup,
			Metrics: normalize.MetricsFromTotals(rollup.Totals),
		})
	}
	return candidates, nil
}

func timelineTouchesRepo(timeline []model.ActivityEvent, repo model.Repo) bool {
	for _, ev := range timeline {
		if ev.Repo == repo {
			return true
		}
	}
	return false
}
