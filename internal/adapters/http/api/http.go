// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/standards-dev/propdash/internal/adapters/repository"
	service "github.com/standards-dev/propdash/internal/app"
	"github.com/standards-dev/propdash/internal/domain/window"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the orchestrator implementation.
type Dependencies interface {
	Rankings(ctx context.Context, q service.RankingsQuery) (*service.RankingsResult, error)
	Reviewers(ctx context.Context, q service.RankingsQuery) (*service.ReviewerActivity, error)
	Insights(ctx context.Context, handle string, q service.RankingsQuery) (*service.ContributorInsights, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rankingsHandler    *RankingsHandler
	reviewersHandler   *ReviewersHandler
	contributorHandler *ContributorHandler
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		rankingsHandler:    NewRankingsHandler(deps),
		reviewersHandler:   NewReviewersHandler(deps),
		contributorHandler: NewContributorHandler(deps),
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/rankings", RequestIDMiddleware(MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings")))
	mux.HandleFunc("/api/reviewers", RequestIDMiddleware(MetricsMiddleware(s.reviewersHandler.HandleGetReviewers, "reviewers")))
	mux.HandleFunc("/api/contributors/", RequestIDMiddleware(MetricsMiddleware(s.contributorHandler.HandleGetContributor, "contributor")))
}

// queryFromRequest parses the shared period/limit/start/end parameters.
func queryFromRequest(r *http.Request) (service.RankingsQuery, error) {
	var q service.RankingsQuery

	period, err := window.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		return q, err
	}
	q.Period = period

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			return q, ErrBadRequest
		}
		q.Limit = n
	}

	if period == window.PeriodCustom {
		start, err := parseMonth(r.URL.Query().Get("start"))
		if err != nil {
			return q, err
		}
		end, err := parseMonth(r.URL.Query().Get("end"))
		if err != nil {
			return q, err
		}
		q.Custom = window.CustomRange{Start: start, End: end}
	}
	return q, nil
}

// parseMonth accepts YYYY-MM or a full date; custom windows have
// calendar-month granularity either way.
func parseMonth(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, window.ErrInvalidWindowSpec
	}
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, window.ErrInvalidWindowSpec
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeEngineError maps engine error kinds to HTTP statuses. A failed
// orchestration yields one structured error; dimensions are never partial.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, window.ErrInvalidWindowSpec), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "invalid_window_spec", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// trimHandle extracts the handle path parameter, rejecting nested paths.
func trimHandle(path, prefix string) (string, bool) {
	h := strings.TrimPrefix(path, prefix)
	if h == "" || strings.Contains(h, "/") {
		return "", false
	}
	return h, true
}
