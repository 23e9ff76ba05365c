// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the terminal report.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/innings/internal/adapters/dataset"
	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/internal/domain/stats"
	"github.com/okian/innings/internal/domain/types"
	"github.com/okian/innings/internal/domain/views"
	"github.com/okian/innings/pkg/logger"
	"github.com/okian/innings/pkg/metrics"
)

// Service answers analytics queries over a loaded dataset.
type Service struct {
	mu sync.RWMutex

	store  *dataset.Store
	tables *model.Tables

	// Configuration
	defaultTopN int
	maxTopN     int
	deathLow    int
	deathHigh   int
	previewRows int

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the dataset store queried by the service.
func WithStore(store *dataset.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultTopN sets the limit used when a caller gives none.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithMaxTopN caps the limit a caller may ask for.
func WithMaxTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}

// WithDeathOvers sets the default death-overs window, inclusive.
func WithDeathOvers(low, high int) Option {
	return func(s *Service) {
		if low <= high {
			s.deathLow = low
			s.deathHigh = high
		}
	}
}

// WithPreviewRows sets how many matches the overview shows by default.
func WithPreviewRows(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.previewRows = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultTopN: stats.DefaultTopN,
		maxTopN:     100,
		deathLow:    stats.DeathOverLow,
		deathHigh:   stats.DeathOverHigh,
		previewRows: 5,
	}

	for _, opt := range opts {
		opt(s)
	}
	s.defaultTopN = min(s.defaultTopN, s.maxTopN)
	s.previewRows = min(s.previewRows, s.maxTopN)

	return s
}

// Start loads the dataset. Load errors are returned unchanged so callers can
// match dataset.ErrDataUnavailable and dataset.ErrSchemaMismatch.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting analytics service...")

	t, err := s.store.Tables(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	s.tables = t
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "analytics service started",
		logger.Int("matches", len(t.Matches)),
		logger.Int("deliveries", len(t.Deliveries)),
		logger.Int("defaultTopN", s.defaultTopN),
		logger.Int("maxTopN", s.maxTopN),
	)

	return nil
}

// Stop releases the tables. Queries fail with ErrNotLoaded afterwards.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.tables = nil
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

func (s *Service) loaded() (*model.Tables, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tables == nil {
		return nil, ErrNotLoaded
	}
	return s.tables, nil
}

// DefaultParams returns the parameters of view id used when a request omits
// them. The overview is limited to the preview length, every other view to
// the default top-N.
func (s *Service) DefaultParams(id views.ID) views.Params {
	p := views.Params{TopN: s.defaultTopN, LowOver: s.deathLow, HighOver: s.deathHigh}
	if id == views.Overview {
		p.TopN = s.previewRows
	}
	return p
}

// MaxTopN returns the largest limit a caller may request.
func (s *Service) MaxTopN() int { return s.maxTopN }

// PreviewRows returns the default overview length.
func (s *Service) PreviewRows() int { return s.previewRows }

// View evaluates one dashboard view. TopN above the configured maximum is capped.
func (s *Service) View(ctx context.Context, id views.ID, p views.Params) (views.Result, error) {
	t, err := s.loaded()
	if err != nil {
		metrics.RecordQueryError(id.String(), "not_loaded")
		return views.Result{}, err
	}
	if p.TopN > s.maxTopN {
		p.TopN = s.maxTopN
	}

	start := time.Now()
	res, err := views.Run(t, id, p)
	if err != nil {
		metrics.RecordQueryError(id.String(), queryErrorKind(err))
		s.logger.Warn(ctx, "view failed", logger.String("view", id.String()), logger.Error(err))
		return views.Result{}, err
	}
	took := time.Since(start)
	metrics.RecordQuery(id.String(), float64(took.Microseconds())/1000)
	s.logger.Debug(ctx, "view computed",
		logger.String("view", id.String()),
		logger.Int("topN", p.TopN),
		logger.Duration("took", took),
	)
	return res, nil
}

// Team returns the record of one team.
func (s *Service) Team(ctx context.Context, team string) (types.TeamSummary, error) {
	t, err := s.loaded()
	if err != nil {
		metrics.RecordQueryError("team", "not_loaded")
		return types.TeamSummary{}, err
	}
	start := time.Now()
	summary := stats.TeamStats(t, team)
	metrics.RecordQuery("team", float64(time.Since(start).Microseconds())/1000)
	s.logger.Debug(ctx, "team computed", logger.String("team", team), logger.Int("played", summary.MatchesPlayed))
	return summary, nil
}

// Teams lists every team in the dataset.
func (s *Service) Teams(_ context.Context) ([]string, error) {
	t, err := s.loaded()
	if err != nil {
		return nil, err
	}
	return stats.Teams(t), nil
}

// Summary returns the headline numbers.
func (s *Service) Summary(_ context.Context) (types.DatasetSummary, error) {
	t, err := s.loaded()
	if err != nil {
		return types.DatasetSummary{}, err
	}
	return stats.Summary(t), nil
}

// Preview returns the first n matches, capped at the configured maximum.
func (s *Service) Preview(_ context.Context, n int) ([]model.Match, error) {
	t, err := s.loaded()
	if err != nil {
		return nil, err
	}
	return stats.Preview(t, min(n, s.maxTopN)), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]any{
		"started":     s.started,
		"defaultTopN": s.defaultTopN,
		"maxTopN":     s.maxTopN,
		"deathOvers":  []int{s.deathLow, s.deathHigh},
	}

	if s.started {
		out["startedAt"] = s.startedAt.UTC().Format(time.RFC3339)
		out["matches"] = len(s.tables.Matches)
		out["deliveries"] = len(s.tables.Deliveries)
		if s.store != nil {
			out["loadedAt"] = s.store.LoadedAt().UTC().Format(time.RFC3339)
			out["loads"] = s.store.Loads()
		}
	}

	return out
}

func queryErrorKind(err error) string {
	switch {
	case errors.Is(err, views.ErrUnknownView):
		return "unknown_view"
	case errors.Is(err, stats.ErrUnknownMetric), errors.Is(err, stats.ErrInvalidBoundary):
		return "invalid_argument"
	default:
		return "internal"
	}
}
