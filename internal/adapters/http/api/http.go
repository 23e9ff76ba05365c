// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/innings/internal/app"
	"github.com/okian/innings/internal/domain/views"
	"github.com/okian/innings/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ViewDependencies
	TeamDependencies
	DatasetDependencies
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	viewsHandler     *ViewsHandler
	teamsHandler     *TeamsHandler
	datasetHandler   *DatasetHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		viewsHandler:     NewViewsHandler(deps),
		teamsHandler:     NewTeamsHandler(deps),
		datasetHandler:   NewDatasetHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.datasetHandler.HandleSummary, "summary"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.datasetHandler.HandleMatches, "matches"))
	mux.HandleFunc("/views", MetricsMiddleware(s.viewsHandler.HandleList, "views"))
	mux.HandleFunc("/views/{id}", MetricsMiddleware(s.viewsHandler.HandleGet, "view"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleList, "teams"))
	mux.HandleFunc("/teams/{team}", MetricsMiddleware(s.teamsHandler.HandleGet, "team"))
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

// writeServiceError translates upstream errors to a status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, views.ErrUnknownView):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "not_loaded", err)
	default:
		logger.Get().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("requestID", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return false
	}
	return true
}
