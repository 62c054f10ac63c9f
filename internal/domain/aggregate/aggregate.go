// Package aggregate produces per-contributor windowed metrics using one of
// two interchangeable strategies: a direct read of precomputed lifetime
// rollups, or a re-aggregation of each contributor's recent timeline.
package aggregate

import (
	"context"

	"github.com/standards-dev/propdash/internal/domain/model"
	"github.com/standards-dev/propdash/internal/domain/window"
)

// Source abstracts the read-only rollup store. Implementations live in the
// repository adapter; strategies never mutate anything behind it.
type Source interface {
	// ListRollups returns every stored contributor document in its raw,
	// schema-heterogeneous form.
	ListRollups(ctx context.Context) ([]map[string]any, error)
}

// Query scopes one aggregation run. A zero Repo means no repository filter.
type Query struct {
	Window model.TimeWindow
	Repo   model.Repo
}

// Strategy produces the candidate set for one query.
type Strategy interface {
	Collect(ctx context.Context, src Source, q Query) ([]model.Candidate, error)
}

// ForWindow picks the strategy implementation matching the resolver's
// selection.
func ForWindow(s window.Strategy) Strategy {
	if s == window.StrategyRollup {
		return RollupStrategy{}
	}
	return TimelineStrategy{}
}
