// Package views maps the dashboard menu onto aggregation queries. The set of
// views is closed: every ID has exactly one entry in the dispatch table.
package views

import (
	"errors"
	"fmt"

	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/internal/domain/stats"
	"github.com/okian/innings/internal/domain/types"
)

// ErrUnknownView is returned for identifiers outside the enumeration.
var ErrUnknownView = errors.New("unknown view")

// ID identifies one dashboard view.
type ID int

// Menu order.
const (
	Overview ID = iota
	Seasons
	TeamWins
	TopBatsmen
	TopFours
	TopSixes
	DeathDismissals
	DeathEconomy

	count
)

// Kind tells a renderer which payload field of a Result is set.
type Kind string

const (
	KindMatches Kind = "matches"
	KindSeries  Kind = "series"
	KindRanking Kind = "ranking"
)

// Params carries the user-selected inputs of a view. Views ignore the
// fields they do not use.
type Params struct {
	TopN     int
	LowOver  int
	HighOver int
}

// DefaultParams returns the parameters used when the caller has no preference.
func DefaultParams() Params {
	return Params{TopN: stats.DefaultTopN, LowOver: stats.DeathOverLow, HighOver: stats.DeathOverHigh}
}

// Result is a render-ready view.
type Result struct {
	View    string              `json:"view"`
	Title   string              `json:"title"`
	Kind    Kind                `json:"kind"`
	Matches []model.Match       `json:"matches,omitempty"`
	Series  []types.SeasonPoint `json:"series,omitempty"`
	Ranking []types.RankedEntry `json:"ranking,omitempty"`
}

type entry struct {
	name  string
	title string
	kind  Kind
	run   func(t *model.Tables, p Params) (Result, error)
}

// table is indexed by ID; its length is pinned to count so a missing entry
// for a new ID fails to compile.
var table = [count]entry{
	Overview: {"overview", "Dataset Overview", KindMatches, func(t *model.Tables, p Params) (Result, error) {
		return Result{Matches: stats.Preview(t, p.TopN)}, nil
	}},
	Seasons: {"seasons", "Matches per Season", KindSeries, func(t *model.Tables, _ Params) (Result, error) {
		return Result{Series: stats.SeasonCounts(t)}, nil
	}},
	TeamWins: {"team_wins", "Most Successful Teams", KindRanking, func(t *model.Tables, p Params) (Result, error) {
		return Result{Ranking: stats.TeamWinCounts(t, p.TopN)}, nil
	}},
	TopBatsmen: {"top_batsmen", "Top Batsmen by Runs", KindRanking, func(t *model.Tables, p Params) (Result, error) {
		return Result{Ranking: stats.TopBatsmenByRuns(t, p.TopN)}, nil
	}},
	TopFours:        {"top_fours", "Most Fours", KindRanking, boundaries(stats.Four)},
	TopSixes:        {"top_sixes", "Most Sixes", KindRanking, boundaries(stats.Six)},
	DeathDismissals: {"death_dismissals", "Death Over Wicket Takers", KindRanking, death(stats.MetricDismissals)},
	DeathEconomy:    {"death_economy", "Most Economical Death Bowlers", KindRanking, death(stats.MetricRunsConceded)},
}

func boundaries(value int) func(*model.Tables, Params) (Result, error) {
	return func(t *model.Tables, p Params) (Result, error) {
		r, err := stats.TopBoundaryHitters(t, value, p.TopN)
		return Result{Ranking: r}, err
	}
}

func death(metric stats.Metric) func(*model.Tables, Params) (Result, error) {
	return func(t *model.Tables, p Params) (Result, error) {
		r, err := stats.DeathOverBowling(t, p.LowOver, p.HighOver, p.TopN, metric)
		return Result{Ranking: r}, err
	}
}

// All returns every view in menu order.
func All() []ID {
	ids := make([]ID, count)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Valid reports whether id belongs to the enumeration.
func (id ID) Valid() bool { return id >= 0 && id < count }

// String returns the stable identifier used in URLs and metrics.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("view(%d)", int(id))
	}
	return table[id].name
}

// Title returns the human-readable heading.
func (id ID) Title() string {
	if !id.Valid() {
		return ""
	}
	return table[id].title
}

// Kind returns the payload kind the view produces.
func (id ID) Kind() Kind {
	if !id.Valid() {
		return ""
	}
	return table[id].kind
}

// ParseID resolves a view name.
func ParseID(name string) (ID, error) {
	for i, e := range table {
		if e.name == name {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// Run evaluates view id over t.
func Run(t *model.Tables, id ID, p Params) (Result, error) {
	if !id.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownView, int(id))
	}
	e := table[id]
	res, err := e.run(t, p)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", e.name, err)
	}
	res.View, res.Title, res.Kind = e.name, e.title, e.kind
	return res, nil
}
