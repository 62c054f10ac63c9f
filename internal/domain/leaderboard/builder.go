// Package leaderboard turns scored candidates into ordered, ranked,
// truncated leaderboards.
package leaderboard

import (
	"sort"

	"github.com/standards-dev/propdash/internal/domain/model"
)

// Dimension names the metric a leaderboard is ordered by.
type Dimension string

// Ranking dimensions.
const (
	DimOverall  Dimension = "overall"
	DimCommits  Dimension = "commits"
	DimPRs      Dimension = "prs"
	DimReviews  Dimension = "reviews"
	DimComments Dimension = "comments"
	DimIssues   Dimension = "issues"
)

// Dimensions lists the single-metric dimensions in response order.
func Dimensions() []Dimension {
	return []Dimension{DimOverall, DimCommits, DimPRs, DimReviews, DimComments, DimIssues}
}

// Value extracts the ordering metric for one candidate. The overall
// dimension orders by composite score.
func Value(m model.ContributorMetrics, dim Dimension) int64 {
	switch dim {
	case DimCommits:
		return m.Commits
	case DimPRs:
		return m.PRs
	case DimReviews:
		return m.Reviews
	case DimComments:
		return m.Comments
	case DimIssues:
		return m.IssuesOpened
	default:
		return m.Score
	}
}

// Build sorts candidates for one dimension and truncates to limit.
//
// Order: metric value descending, ties by composite score descending,
// remaining ties by handle ascending. The chain leaves no ambiguity, so
// identical requests against the same snapshot produce identical boards.
// Ranks are dense, 1-based, and assigned after truncation.
func Build(candidates []model.Candidate, dim Dimension, limit int) []model.LeaderboardEntry {
	if limit < 0 {
		limit = 0
	}

	sorted := make([]model.Candidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := Value(sorted[i].Metrics, dim), Value(sorted[j].Metrics, dim)
		if vi != vj {
			return vi > vj
		}
		if sorted[i].Metrics.Score != sorted[j].Metrics.Score {
			return sorted[i].Metrics.Score > sorted[j].Metrics.Score
		}
		return sorted[i].Rollup.Handle < sorted[j].Rollup.Handle
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]model.LeaderboardEntry, len(sorted))
	for i, c := range sorted {
		entries[i] = model.LeaderboardEntry{
			Rank:             i + 1,
			Handle:           c.Rollup.Handle,
			DisplayName:      c.Rollup.DisplayName,
			AvatarURL:        c.Rollup.AvatarURL,
			Value:            Value(c.Metrics, dim),
			Metrics:          c.Metrics,
			Score:            c.Metrics.Score,
			Status:           c.Rollup.Status,
			AvgResponseHours: c.Rollup.AvgResponseHours,
		}
	}
	return entries
}
