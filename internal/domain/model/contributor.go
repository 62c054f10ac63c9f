package model

// Totals holds lifetime counts per activity kind. Values are non-negative
// and monotonically non-decreasing over a contributor's history.
type Totals struct {
	Commits      int64
	PRsOpened    int64
	PRsMerged    int64
	PRsClosed    int64
	Reviews      int64
	Comments     int64
	IssuesOpened int64
}

// ContributorRollup is the precomputed per-contributor summary maintained by
// the out-of-scope batch refresh. The Timeline is a bounded recent suffix of
// the contributor's activity; it must never stand in for the complete history
// on unbounded queries, and its order is not guaranteed.
type ContributorRollup struct {
	Handle           string
	DisplayName      string
	AvatarURL        string
	Totals           Totals
	Timeline         []ActivityEvent
	Status           string
	AvgResponseHours *float64
}

// ContributorMetrics is the canonical per-window metrics record. It is built
// fresh for every request; windows and weights vary between requests, so
// instances are never cached.
type ContributorMetrics struct {
	Commits      int64 `json:"commits"`
	PRsOpened    int64 `json:"prsOpened"`
	PRsMerged    int64 `json:"prsMerged"`
	PRsClosed    int64 `json:"prsClosed"`
	Reviews      int64 `json:"reviews"`
	Comments     int64 `json:"comments"`
	IssuesOpened int64 `json:"issuesOpened"`

	// PRs is the sum of the three PR sub-counts.
	PRs int64 `json:"prs"`
	// Score is the weighted composite, filled in by the scoring package.
	Score int64 `json:"activityScore"`
}

// Total reports the count for one activity kind.
func (m ContributorMetrics) Total(k ActivityKind) int64 {
	switch k {
	case KindCommit:
		return m.Commits
	case KindPROpened:
		return m.PRsOpened
	case KindPRMerged:
		return m.PRsMerged
	case KindPRClosed:
		return m.PRsClosed
	case KindReview:
		return m.Reviews
	case KindComment:
		return m.Comments
	case KindIssueOpened:
		return m.IssuesOpened
	}
	return 0
}

// Candidate pairs a contributor's rollup with the metrics derived for the
// requested window. Candidates are what the aggregation strategies emit and
// the leaderboard builder consumes.
type Candidate struct {
	Rollup  ContributorRollup
	Metrics ContributorMetrics
}

// LeaderboardEntry is one row of one ranked, truncated leaderboard.
// Entries are created by the leaderboard builder and discarded after
// serialization.
type LeaderboardEntry struct {
	Rank             int                `json:"rank"`
	Handle           string             `json:"handle"`
	DisplayName      string             `json:"displayName"`
	AvatarURL        string             `json:"avatarUrl,omitempty"`
	Value            int64              `json:"value"`
	Metrics          ContributorMetrics `json:"metrics"`
	Score            int64              `json:"score"`
	Status           string             `json:"status,omitempty"`
	AvgResponseHours *float64           `json:"avgResponseHours,omitempty"`
}
