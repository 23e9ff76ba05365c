// Package model contains the record types read from the dataset.
package model

// Match is one row of the matches table.
type Match struct {
	ID     string `json:"id,omitempty"`
	Season string `json:"season"`
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Winner string `json:"winner,omitempty"` // empty when the match had no result
	Venue  string `json:"venue"`
}

// HasResult reports whether the match produced a winner.
func (m Match) HasResult() bool { return m.Winner != "" }

// Involves reports whether team played in the match.
func (m Match) Involves(team string) bool { return m.Team1 == team || m.Team2 == team }

// Delivery is one ball of the deliveries table.
type Delivery struct {
	MatchID         string `json:"match_id,omitempty"`
	Batsman         string `json:"batsman"`
	Bowler          string `json:"bowler"`
	Over            int    `json:"over"` // 1-based
	BatsmanRuns     int    `json:"batsman_runs"`
	TotalRuns       int    `json:"total_runs"`
	PlayerDismissed string `json:"player_dismissed,omitempty"` // empty when nobody was out
}

// IsWicket reports whether a player was dismissed on this ball.
func (d Delivery) IsWicket() bool { return d.PlayerDismissed != "" }

// Tables holds both loaded tables. It is never mutated after load and is
// safe for concurrent reads.
type Tables struct {
	Matches    []Match    `json:"matches"`
	Deliveries []Delivery `json:"deliveries"`
}
