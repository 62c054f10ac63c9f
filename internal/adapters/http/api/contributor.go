// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// ContributorHandler handles per-contributor analytics requests.
type ContributorHandler struct {
	deps Dependencies
}

// NewContributorHandler creates a new contributor handler.
func NewContributorHandler(deps Dependencies) *ContributorHandler {
	return &ContributorHandler{deps: deps}
}

// HandleGetContributor handles GET /api/contributors/{handle}?period=
// requests.
func (h *ContributorHandler) HandleGetContributor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	handle, ok := trimHandle(r.URL.Path, "/api/contributors/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	q, err := queryFromRequest(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	insights, err := h.deps.Insights(r.Context(), handle, q)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}
