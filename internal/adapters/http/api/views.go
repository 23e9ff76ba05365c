package api

import (
	"context"
	"net/http"

	"github.com/okian/innings/internal/domain/views"
)

// ViewDependencies defines the interface for dashboard view queries.
type ViewDependencies interface {
	View(ctx context.Context, id views.ID, p views.Params) (views.Result, error)
	DefaultParams(id views.ID) views.Params
	MaxTopN() int
}

// ViewsHandler serves the view menu and the views themselves.
type ViewsHandler struct {
	deps ViewDependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps ViewDependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

type viewInfo struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Kind  views.Kind `json:"kind"`
}

// HandleList handles GET /views requests.
func (h *ViewsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	ids := views.All()
	out := make([]viewInfo, len(ids))
	for i, id := range ids {
		out[i] = viewInfo{ID: id.String(), Title: id.Title(), Kind: id.Kind()}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /views/{id}?limit=N&low=A&high=B requests.
func (h *ViewsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_view"
	if !allowGet(w, r) {
		return
	}
	id, err := views.ParseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", wrap(op, err))
		return
	}

	p := h.deps.DefaultParams(id)
	q := r.URL.Query()
	var ok bool
	if p.TopN, ok = intParam(q, "limit", p.TopN, 0); !ok {
		writeError(w, http.StatusBadRequest, "bad_request", newKind(op, ErrBadRequest))
		return
	}
	// Only an explicit limit can exceed the maximum.
	if q.Has("limit") && p.TopN > h.deps.MaxTopN() {
		writeError(w, http.StatusBadRequest, "limit_exceeded", newKind(op, ErrBadRequest))
		return
	}
	if p.LowOver, ok = intParam(q, "low", p.LowOver, 1); !ok {
		writeError(w, http.StatusBadRequest, "bad_request", newKind(op, ErrBadRequest))
		return
	}
	if p.HighOver, ok = intParam(q, "high", p.HighOver, 1); !ok {
		writeError(w, http.StatusBadRequest, "bad_request", newKind(op, ErrBadRequest))
		return
	}

	res, err := h.deps.View(r.Context(), id, p)
	if err != nil {
		writeServiceError(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
