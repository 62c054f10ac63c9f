// Package model contains domain models passed between layers.
package model

import "time"

// ActivityKind identifies one observed action type. The set is closed;
// the ingestion pipeline never records anything outside of it.
type ActivityKind string

// Activity kinds recorded by the ingestion pipeline.
const (
	KindCommit      ActivityKind = "commit"
	KindPROpened    ActivityKind = "pr_opened"
	KindPRMerged    ActivityKind = "pr_merged"
	KindPRClosed    ActivityKind = "pr_closed"
	KindReview      ActivityKind = "review"
	KindComment     ActivityKind = "comment"
	KindIssueOpened ActivityKind = "issue_opened"
)

// Kinds lists every activity kind in a stable order.
func Kinds() []ActivityKind {
	return []ActivityKind{
		KindCommit,
		KindPROpened,
		KindPRMerged,
		KindPRClosed,
		KindReview,
		KindComment,
		KindIssueOpened,
	}
}

// Valid reports whether k is one of the known activity kinds.
func (k ActivityKind) Valid() bool {
	switch k {
	case KindCommit, KindPROpened, KindPRMerged, KindPRClosed,
		KindReview, KindComment, KindIssueOpened:
		return true
	}
	return false
}

// Repo names one repository of the proposal ecosystem. The set is closed.
type Repo string

// Tracked repositories.
const (
	RepoProposals     Repo = "proposals"
	RepoSpecification Repo = "specification"
	RepoWebsite       Repo = "website"
)

// Repos lists the tracked repositories in a stable order.
func Repos() []Repo {
	return []Repo{RepoProposals, RepoSpecification, RepoWebsite}
}

// Valid reports whether r is one of the tracked repositories.
func (r Repo) Valid() bool {
	switch r {
	case RepoProposals, RepoSpecification, RepoWebsite:
		return true
	}
	return false
}

// ActivityEvent is one observed action. Events are immutable once recorded
// and owned by the ingestion pipeline; this engine only reads them.
// Actor is empty for events embedded in a contributor's own timeline.
type ActivityEvent struct {
	Actor string
	Kind  ActivityKind
	Repo  Repo
	TS    time.Time
}

// TimeWindow is a resolved query boundary. A zero Start and End means
// unbounded ("all time"); otherwise the interval is half-open [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Bounded reports whether the window constrains time at all.
func (w TimeWindow) Bounded() bool {
	return !w.Start.IsZero() || !w.End.IsZero()
}

// Contains reports whether ts falls inside the window. Start is inclusive,
// End is exclusive.
func (w TimeWindow) Contains(ts time.Time) bool {
	if !w.Bounded() {
		return true
	}
	if !w.Start.IsZero() && ts.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !ts.Before(w.End) {
		return false
	}
	return true
}
