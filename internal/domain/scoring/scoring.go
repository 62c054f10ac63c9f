// Package scoring computes the weighted composite activity score used as
// the default ranking metric.
package scoring

import "github.com/standards-dev/propdash/internal/domain/model"

// Stock weights. A pull request represents more effort than a commit or a
// comment; the encoding is intentionally linear with no decay or recency
// bonus, which keeps ranking a total order and scores non-negative for
// non-negative inputs.
const (
	defaultCommitWeight  = 3
	defaultPRWeight      = 5
	defaultReviewWeight  = 4
	defaultCommentWeight = 2
	defaultIssueWeight   = 3
)

// Weights holds the per-dimension multipliers. All weights are
// non-negative; replacement weightings must stay linear so that no
// contributor can score below zero.
type Weights struct {
	Commits  int64
	PRs      int64
	Reviews  int64
	Comments int64
	Issues   int64
}

// DefaultWeights returns the stock weighting.
func DefaultWeights() Weights {
	return Weights{
		Commits:  defaultCommitWeight,
		PRs:      defaultPRWeight,
		Reviews:  defaultReviewWeight,
		Comments: defaultCommentWeight,
		Issues:   defaultIssueWeight,
	}
}

func (w Weights) valid() bool {
	return w.Commits >= 0 && w.PRs >= 0 && w.Reviews >= 0 && w.Comments >= 0 && w.Issues >= 0
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights overrides the stock weights. Weight sets containing a
// negative value are ignored.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.valid() {
			s.weights = w
		}
	}
}

// Scorer computes composite scores from canonical metrics.
type Scorer struct {
	weights Weights
}

// New creates a Scorer with the stock weights unless overridden.
func New(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the composite score for one metrics record. The PRs field
// must already hold the sum of the three PR sub-counts. A contributor with
// all-zero metrics scores exactly 0 and stays rankable; exclusion is a
// strategy concern, never a scoring one.
func (s *Scorer) Score(m model.ContributorMetrics) int64 {
	w := s.weights
	return m.Commits*w.Commits +
		m.PRs*w.PRs +
		m.Reviews*w.Reviews +
		m.Comments*w.Comments +
		m.IssuesOpened*w.Issues
}

// Apply stamps the composite score onto each candidate's metrics.
func (s *Scorer) Apply(candidates []model.Candidate) {
	for i := range candidates {
		candidates[i].Metrics.Score = s.Score(candidates[i].Metrics)
	}
}
