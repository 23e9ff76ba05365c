package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/innings/internal/domain/types"
)

// TeamDependencies defines the interface for team queries.
type TeamDependencies interface {
	Team(ctx context.Context, team string) (types.TeamSummary, error)
	Teams(ctx context.Context) ([]string, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// teamResponse adds the derived percentage. Teams without matches are a 404,
// so the percentage is always defined here.
type teamResponse struct {
	types.TeamSummary
	WinPercentage float64 `json:"win_percentage"`
}

// HandleList handles GET /teams requests.
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		writeServiceError(w, r, wrap("api.list_teams", err))
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleGet handles GET /teams/{team} requests.
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	if !allowGet(w, r) {
		return
	}
	team := strings.TrimSpace(r.PathValue("team"))
	if team == "" {
		writeError(w, http.StatusBadRequest, "bad_request", newKind(op, ErrBadRequest))
		return
	}
	summary, err := h.deps.Team(r.Context(), team)
	if err != nil {
		writeServiceError(w, r, wrap(op, err))
		return
	}

	pct, err := summary.WinPercentage()
	switch {
	case errors.Is(err, types.ErrDivisionUndefined):
		writeError(w, http.StatusNotFound, "not_found", newKind(op, ErrNotFound))
		return
	case err != nil:
		writeServiceError(w, r, wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, teamResponse{TeamSummary: summary, WinPercentage: pct})
}
