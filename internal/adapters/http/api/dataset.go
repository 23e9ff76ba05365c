package api

import (
	"context"
	"net/http"

	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/internal/domain/types"
)

// DatasetDependencies defines the interface for dataset-wide queries.
type DatasetDependencies interface {
	Summary(ctx context.Context) (types.DatasetSummary, error)
	Preview(ctx context.Context, n int) ([]model.Match, error)
	PreviewRows() int
	MaxTopN() int
}

// DatasetHandler handles summary and preview requests.
type DatasetHandler struct {
	deps DatasetDependencies
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(deps DatasetDependencies) *DatasetHandler {
	return &DatasetHandler{deps: deps}
}

// HandleSummary handles GET /summary requests.
func (h *DatasetHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	s, err := h.deps.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, wrap("api.get_summary", err))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleMatches handles GET /matches?limit=N requests.
func (h *DatasetHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matches"
	if !allowGet(w, r) {
		return
	}
	n, ok := intParam(r.URL.Query(), "limit", h.deps.PreviewRows(), 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", newKind(op, ErrBadRequest))
		return
	}
	if n > h.deps.MaxTopN() {
		writeError(w, http.StatusBadRequest, "limit_exceeded", newKind(op, ErrBadRequest))
		return
	}
	matches, err := h.deps.Preview(r.Context(), n)
	if err != nil {
		writeServiceError(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
