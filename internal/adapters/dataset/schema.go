// Package dataset reads the matches and deliveries tables into typed, immutable records.
package dataset

import (
	"fmt"
	"strings"
)

// Table names, used in errors, logs and metrics.
const (
	TableMatches    = "matches"
	TableDeliveries = "deliveries"
)

// Column names of the matches table.
const (
	colID     = "id"
	colSeason = "season"
	colTeam1  = "team1"
	colTeam2  = "team2"
	colWinner = "winner"
	colVenue  = "venue"
)

// Column names of the deliveries table.
const (
	colMatchID         = "match_id"
	colBatsman         = "batsman"
	colBowler          = "bowler"
	colOver            = "over"
	colBatsmanRuns     = "batsman_runs"
	colTotalRuns       = "total_runs"
	colPlayerDismissed = "player_dismissed"
)

// MatchColumns lists the columns every matches file must carry.
var MatchColumns = []string{colSeason, colTeam1, colTeam2, colWinner, colVenue}

// DeliveryColumns lists the columns every deliveries file must carry.
var DeliveryColumns = []string{colBatsman, colBowler, colOver, colBatsmanRuns, colTotalRuns, colPlayerDismissed}

// columnIndex maps lower-cased header names to their position.
type columnIndex map[string]int

// indexHeader resolves the header row and checks that every required column is present.
// Optional columns that are absent read as empty cells.
func indexHeader(table string, header []string, required []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s: missing columns %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (c columnIndex) get(row []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}
	return normalize(row[i])
}

// nullMarkers are the cell values treated as missing.
var nullMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// normalize trims a cell and collapses null markers to the empty string.
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if _, ok := nullMarkers[strings.ToLower(v)]; ok {
		return ""
	}
	return v
}
