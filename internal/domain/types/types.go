// Package types contains the result shapes produced by aggregation queries.
package types

// RankedEntry is one row of a ranked-totals result.
type RankedEntry struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Total int    `json:"total"`
}

// SeasonPoint is one element of a per-season series.
type SeasonPoint struct {
	Season string `json:"season"`
	Value  int    `json:"value"`
}

// TeamSummary aggregates one team's record over the dataset.
type TeamSummary struct {
	Team          string        `json:"team"`
	MatchesPlayed int           `json:"matches_played"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	NoResults     int           `json:"no_results"`
	WinsBySeason  []SeasonPoint `json:"wins_by_season"`
}

// WinPercentage returns wins / matches played * 100.
// It fails with ErrDivisionUndefined when the team played no match.
func (s TeamSummary) WinPercentage() (float64, error) {
	if s.MatchesPlayed == 0 {
		return 0, ErrDivisionUndefined
	}
	return float64(s.Wins) / float64(s.MatchesPlayed) * 100, nil
}

// DatasetSummary holds the headline numbers of the dataset.
type DatasetSummary struct {
	TotalMatches  int `json:"total_matches"`
	UniquePlayers int `json:"unique_players"`
	Seasons       int `json:"seasons"`
	Teams         int `json:"teams"`
}
