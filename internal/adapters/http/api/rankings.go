// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// RankingsHandler handles leaderboard ranking requests.
type RankingsHandler struct {
	deps Dependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// HandleGetRankings handles GET /api/rankings?period=&limit=[&start=&end=]
// requests. The response carries the resolved period and exactly nine
// leaderboards, fully materialized against one resolved window.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := queryFromRequest(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	result, err := h.deps.Rankings(r.Context(), q)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
