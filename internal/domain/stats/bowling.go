package stats

import (
	"fmt"

	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/internal/domain/types"
)

// Death overs of a 20-over innings.
const (
	DeathOverLow  = 16
	DeathOverHigh = 20
)

// Metric selects what DeathOverBowling ranks bowlers by.
type Metric int

const (
	// MetricDismissals counts wickets; more ranks higher.
	MetricDismissals Metric = iota
	// MetricRunsConceded sums runs off every ball; fewer ranks higher.
	MetricRunsConceded
)

func (m Metric) String() string {
	switch m {
	case MetricDismissals:
		return "dismissals"
	case MetricRunsConceded:
		return "runsConceded"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric accepts "dismissals" or "runsConceded".
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "dismissals":
		return MetricDismissals, nil
	case "runsConceded":
		return MetricRunsConceded, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// DeathOverBowling ranks bowlers over deliveries whose over falls in
// [lowOver, highOver]. Dismissals rank descending; runs conceded rank
// ascending. Every bowler with a delivery in the window is a candidate.
func DeathOverBowling(t *model.Tables, lowOver, highOver, topN int, metric Metric) ([]types.RankedEntry, error) {
	var dir direction
	switch metric {
	case MetricDismissals:
		dir = descending
	case MetricRunsConceded:
		dir = ascending
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}
	if lowOver > highOver {
		return []types.RankedEntry{}, nil
	}

	totals := make(map[string]int)
	for _, d := range t.Deliveries {
		if d.Over < lowOver || d.Over > highOver {
			continue
		}
		switch metric {
		case MetricDismissals:
			n := 0
			if d.IsWicket() {
				n = 1
			}
			totals[d.Bowler] += n
		case MetricRunsConceded:
			totals[d.Bowler] += d.TotalRuns
		}
	}
	return rank(totals, dir, topN), nil
}
