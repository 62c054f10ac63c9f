// Package service provides the query orchestrator that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/standards-dev/propdash/internal/adapters/repository"
	"github.com/standards-dev/propdash/internal/domain/aggregate"
	"github.com/standards-dev/propdash/internal/domain/leaderboard"
	"github.com/standards-dev/propdash/internal/domain/model"
	"github.com/standards-dev/propdash/internal/domain/normalize"
	"github.com/standards-dev/propdash/internal/domain/scoring"
	"github.com/standards-dev/propdash/internal/domain/window"
	"github.com/standards-dev/propdash/pkg/logger"
	"github.com/standards-dev/propdash/pkg/metrics"
)

// Default request configuration constants.
const (
	defaultLimit          = 10
	defaultMaxLimit       = 100
	defaultRequestTimeout = 15 * time.Second
)

// Service orchestrates ranking queries over the injected rollup store.
// It holds no per-request state; every call computes a fresh snapshot.
type Service struct {
	store    repository.Store
	scorer   *scoring.Scorer
	policy   window.LookbackPolicy
	limit    int
	maxLimit int
	timeout  time.Duration
	now      func() time.Time
	logger   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorer sets a custom scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(svc *Service) {
		if s != nil {
			svc.scorer = s
		}
	}
}

// WithLookbackPolicy sets the lookback durations for relative periods.
func WithLookbackPolicy(p window.LookbackPolicy) Option {
	return func(svc *Service) {
		svc.policy = p
	}
}

// WithDefaultLimit sets the leaderboard size used when a request omits one.
func WithDefaultLimit(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.limit = n
		}
	}
}

// WithMaxLimit caps the requestable leaderboard size.
func WithMaxLimit(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.maxLimit = n
		}
	}
}

// WithRequestTimeout bounds one whole orchestration. Every fan-out task
// inherits the same deadline; a slow store query cannot hang the request
// indefinitely.
func WithRequestTimeout(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.timeout = d
		}
	}
}

// WithClock injects the time source. Tests pin it for determinism.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// New constructs a Service around an injected store. The store's pooled
// connection has process lifecycle; the service never opens or closes it.
func New(store repository.Store, opts ...Option) *Service {
	svc := &Service{
		store:    store,
		scorer:   scoring.New(),
		policy:   window.DefaultLookbackPolicy(),
		limit:    defaultLimit,
		maxLimit: defaultMaxLimit,
		timeout:  defaultRequestTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = logger.Get().Named("service")
	}
	return svc
}

// RankingsQuery carries one rankings request.
type RankingsQuery struct {
	Period window.Period
	Custom window.CustomRange
	Limit  int
}

// RankingsResult is the fully materialized response: the resolved period
// plus exactly nine leaderboards, all computed against one window.
type RankingsResult struct {
	Period      string                              `json:"period"`
	Window      model.TimeWindow                    `json:"window"`
	GeneratedAt time.Time                           `json:"generatedAt"`
	Rankings    map[string][]model.LeaderboardEntry `json:"rankings"`
}

// boardSpec names one of the nine leaderboard computations.
type boardSpec struct {
	key  string
	dim  leaderboard.Dimension
	repo model.Repo
}

func boardSpecs() []boardSpec {
	specs := make([]boardSpec, 0, 9)
	for _, dim := range leaderboard.Dimensions() {
		specs = append(specs, boardSpec{key: string(dim), dim: dim})
	}
	for _, repo := range model.Repos() {
		specs = append(specs, boardSpec{
			key:  "repo:" + string(repo),
			dim:  leaderboard.DimOverall,
			repo: repo,
		})
	}
	return specs
}

// Rankings resolves the window once, then builds the nine leaderboards
// concurrently. All tasks share the resolved window and the store handle;
// none observes another's output. If any task fails the whole request
// fails — a partially populated response is never returned.
func (s *Service) Rankings(ctx context.Context, q RankingsQuery) (*RankingsResult, error) {
	start := time.Now()
	metrics.RecordRankingRequest(string(q.Period))

	limit := s.clampLimit(q.Limit)
	now := s.now()

	win, strat, err := window.Resolve(q.Period, q.Custom, now, s.policy)
	if err != nil {
		metrics.RecordRankingError()
		return nil, err
	}
	agg := aggregate.ForWindow(strat)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	specs := boardSpecs()
	boards := make([][]model.LeaderboardEntry, len(specs))
	errs := make([]error, len(specs))

	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(i int, spec boardSpec) {
			defer wg.Done()
			boards[i], errs[i] = s.buildBoard(ctx, agg, spec, win, limit)
		}(i, spec)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			metrics.RecordRankingError()
			s.logger.Error(ctx, "ranking orchestration failed",
				logger.String("period", string(q.Period)),
				logger.Error(err),
			)
			return nil, fmt.Errorf("rankings: %w", err)
		}
	}

	rankings := make(map[string][]model.LeaderboardEntry, len(specs))
	for i, spec := range specs {
		rankings[spec.key] = boards[i]
	}

	metrics.RecordRankingDuration(float64(time.Since(start).Milliseconds()))
	return &RankingsResult{
		Period:      string(q.Period),
		Window:      win,
		GeneratedAt: now,
		Rankings:    rankings,
	}, nil
}

// buildBoard runs one of the nine computations: collect, score, build.
func (s *Service) buildBoard(
	ctx context.Context,
	agg aggregate.Strategy,
	spec boardSpec,
	win model.TimeWindow,
	limit int,
) ([]model.LeaderboardEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLeaderboardBuildDuration(spec.key, float64(time.Since(start).Milliseconds()))
	}()

	candidates, err := agg.Collect(ctx, s.store, aggregate.Query{Window: win, Repo: spec.repo})
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", spec.key, err)
	}
	s.scorer.Apply(candidates)
	return leaderboard.Build(candidates, spec.dim, limit), nil
}

// ContributorInsights is the engine behind the per-contributor analytics
// endpoint: windowed metrics, composite score, and the contributor's rank
// on the overall board for the same window.
type ContributorInsights struct {
	Handle           string                   `json:"handle"`
	DisplayName      string                   `json:"displayName"`
	AvatarURL        string                   `json:"avatarUrl,omitempty"`
	Period           string                   `json:"period"`
	Metrics          model.ContributorMetrics `json:"metrics"`
	OverallRank      int                      `json:"overallRank"` // 0 when absent from the window
	Status           string                   `json:"status,omitempty"`
	AvgResponseHours *float64                 `json:"avgResponseHours,omitempty"`
}

// Insights computes windowed analytics for one contributor.
func (s *Service) Insights(ctx context.Context, handle string, q RankingsQuery) (*ContributorInsights, error) {
	now := s.now()
	win, strat, err := window.Resolve(q.Period, q.Custom, now, s.policy)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.store.GetRollup(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("insights for %q: %w", handle, err)
	}
	rollup, err := normalize.DecodeRollup(doc)
	if err != nil {
		return nil, fmt.Errorf("insights for %q: %w", handle, err)
	}

	var m model.ContributorMetrics
	if strat == window.StrategyRollup {
		m = normalize.MetricsFromTotals(rollup.Totals)
	} else {
		m, _ = aggregate.MetricsForWindow(rollup.Timeline, aggregate.Query{Window: win})
	}
	m.Score = s.scorer.Score(m)

	rank, err := s.overallRank(ctx, aggregate.ForWindow(strat), win, handle)
	if err != nil {
		return nil, fmt.Errorf("insights for %q: %w", handle, err)
	}

	return &ContributorInsights{
		Handle:           rollup.Handle,
		DisplayName:      rollup.DisplayName,
		AvatarURL:        rollup.AvatarURL,
		Period:           string(q.Period),
		Metrics:          m,
		OverallRank:      rank,
		Status:           rollup.Status,
		AvgResponseHours: rollup.AvgResponseHours,
	}, nil
}

// overallRank positions one contributor on the untruncated overall board.
// Zero means the contributor had no activity in the window.
func (s *Service) overallRank(ctx context.Context, agg aggregate.Strategy, win model.TimeWindow, handle string) (int, error) {
	candidates, err := agg.Collect(ctx, s.store, aggregate.Query{Window: win})
	if err != nil {
		return 0, err
	}
	s.scorer.Apply(candidates)
	board := leaderboard.Build(candidates, leaderboard.DimOverall, len(candidates))
	for _, entry := range board {
		if entry.Handle == handle {
			return entry.Rank, nil
		}
	}
	return 0, nil
}

// ReviewerActivity is the engine behind the editor/reviewer analytics
// endpoint: review- and comment-ordered boards for one window, plus the
// mean response time across the candidate set.
type ReviewerActivity struct {
	Period           string                   `json:"period"`
	Reviews          []model.LeaderboardEntry `json:"reviews"`
	Comments         []model.LeaderboardEntry `json:"comments"`
	AvgResponseHours *float64                 `json:"avgResponseHours,omitempty"`
}

// Reviewers computes the reviewer activity analytics.
func (s *Service) Reviewers(ctx context.Context, q RankingsQuery) (*ReviewerActivity, error) {
	now := s.now()
	win, strat, err := window.Resolve(q.Period, q.Custom, now, s.policy)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidates, err := aggregate.ForWindow(strat).Collect(ctx, s.store, aggregate.Query{Window: win})
	if err != nil {
		return nil, fmt.Errorf("reviewers: %w", err)
	}
	s.scorer.Apply(candidates)

	limit := s.clampLimit(q.Limit)
	result := &ReviewerActivity{
		Period:   string(q.Period),
		Reviews:  leaderboard.Build(candidates, leaderboard.DimReviews, limit),
		Comments: leaderboard.Build(candidates, leaderboard.DimComments, limit),
	}

	var sum float64
	var n int
	for _, c := range candidates {
		if c.Rollup.AvgResponseHours != nil {
			sum += *c.Rollup.AvgResponseHours
			n++
		}
	}
	if n > 0 {
		avg := sum / float64(n)
		result.AvgResponseHours = &avg
	}
	return result, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	count := s.store.Count(context.Background())
	metrics.UpdateContributorsTotal(count)
	return map[string]interface{}{
		"contributors":   count,
		"defaultLimit":   s.limit,
		"maxLimit":       s.maxLimit,
		"requestTimeout": s.timeout.String(),
	}
}

func (s *Service) clampLimit(n int) int {
	if n <= 0 {
		return s.limit
	}
	if n > s.maxLimit {
		return s.maxLimit
	}
	return n
}
