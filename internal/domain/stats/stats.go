// Package stats is the aggregation layer: pure, stateless queries that turn
// the loaded matches and deliveries tables into ranked totals and per-season
// series. No function here mutates its input.
package stats

import (
	"slices"

	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/internal/domain/types"
)

// DefaultTopN is the ranking length used when the caller has no preference.
const DefaultTopN = 10

// Boundary values accepted by TopBoundaryHitters.
const (
	Four = 4
	Six  = 6
)

// TotalMatches counts match records.
func TotalMatches(t *model.Tables) int {
	return len(t.Matches)
}

// UniquePlayers counts distinct batsmen in the deliveries table.
func UniquePlayers(t *model.Tables) int {
	seen := make(map[string]struct{})
	for _, d := range t.Deliveries {
		seen[d.Batsman] = struct{}{}
	}
	return len(seen)
}

// SeasonCounts counts matches per season, ordered by season.
func SeasonCounts(t *model.Tables) []types.SeasonPoint {
	counts := make(map[string]int)
	for _, m := range t.Matches {
		counts[m.Season]++
	}
	return series(counts)
}

// TeamWinCounts ranks teams by matches won. Matches without a result are skipped.
func TeamWinCounts(t *model.Tables, topN int) []types.RankedEntry {
	wins := make(map[string]int)
	for _, m := range t.Matches {
		if m.HasResult() {
			wins[m.Winner]++
		}
	}
	return rank(wins, descending, topN)
}

// TopBatsmenByRuns ranks batsmen by runs scored off the bat.
func TopBatsmenByRuns(t *model.Tables, topN int) []types.RankedEntry {
	runs := make(map[string]int)
	for _, d := range t.Deliveries {
		runs[d.Batsman] += d.BatsmanRuns
	}
	return rank(runs, descending, topN)
}

// TopBoundaryHitters ranks batsmen by the number of balls on which they scored
// exactly boundaryValue runs. boundaryValue must be Four or Six.
func TopBoundaryHitters(t *model.Tables, boundaryValue, topN int) ([]types.RankedEntry, error) {
	if boundaryValue != Four && boundaryValue != Six {
		return nil, ErrInvalidBoundary
	}
	hits := make(map[string]int)
	for _, d := range t.Deliveries {
		if d.BatsmanRuns == boundaryValue {
			hits[d.Batsman]++
		}
	}
	return rank(hits, descending, topN), nil
}

// TeamStats summarizes every match team played in. The per-season series
// covers each season the team appeared in, including seasons without a win.
func TeamStats(t *model.Tables, team string) types.TeamSummary {
	s := types.TeamSummary{Team: team}
	seasonWins := make(map[string]int)
	for _, m := range t.Matches {
		if !m.Involves(team) {
			continue
		}
		s.MatchesPlayed++
		if _, ok := seasonWins[m.Season]; !ok {
			seasonWins[m.Season] = 0
		}
		switch m.Winner {
		case team:
			s.Wins++
			seasonWins[m.Season]++
		case "":
			s.NoResults++
		default:
			s.Losses++
		}
	}
	s.WinsBySeason = series(seasonWins)
	return s
}

// Teams lists every team that appears as team1 or team2, sorted.
func Teams(t *model.Tables) []string {
	seen := make(map[string]struct{})
	for _, m := range t.Matches {
		seen[m.Team1] = struct{}{}
		seen[m.Team2] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for team := range seen {
		out = append(out, team)
	}
	slices.Sort(out)
	return out
}

// Preview returns the first n matches in file order.
func Preview(t *model.Tables, n int) []model.Match {
	if n <= 0 {
		return []model.Match{}
	}
	n = min(n, len(t.Matches))
	return slices.Clone(t.Matches[:n])
}

// Summary collects the headline numbers of the dataset.
func Summary(t *model.Tables) types.DatasetSummary {
	seasons := make(map[string]struct{})
	for _, m := range t.Matches {
		seasons[m.Season] = struct{}{}
	}
	return types.DatasetSummary{
		TotalMatches:  TotalMatches(t),
		UniquePlayers: UniquePlayers(t),
		Seasons:       len(seasons),
		Teams:         len(Teams(t)),
	}
}
