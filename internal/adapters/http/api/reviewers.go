// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// ReviewersHandler handles editor/reviewer analytics requests.
type ReviewersHandler struct {
	deps Dependencies
}

// NewReviewersHandler creates a new reviewers handler.
func NewReviewersHandler(deps Dependencies) *ReviewersHandler {
	return &ReviewersHandler{deps: deps}
}

// HandleGetReviewers handles GET /api/reviewers?period=&limit= requests.
func (h *ReviewersHandler) HandleGetReviewers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := queryFromRequest(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	result, err := h.deps.Reviewers(r.Context(), q)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
