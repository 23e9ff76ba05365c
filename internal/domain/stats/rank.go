package stats

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/innings/internal/domain/types"
)

// direction selects how totals are ordered before truncation.
type direction int

const (
	descending direction = iota
	ascending
)

// rank sorts per-entity totals and keeps the first topN.
// Ties break by ascending identifier so output is deterministic.
func rank(totals map[string]int, dir direction, topN int) []types.RankedEntry {
	if topN <= 0 || len(totals) == 0 {
		return []types.RankedEntry{}
	}
	entries := make([]types.RankedEntry, 0, len(totals))
	for id, total := range totals {
		entries = append(entries, types.RankedEntry{ID: id, Total: total})
	}
	slices.SortFunc(entries, func(a, b types.RankedEntry) int {
		if a.Total != b.Total {
			if dir == descending {
				return cmp.Compare(b.Total, a.Total)
			}
			return cmp.Compare(a.Total, b.Total)
		}
		return strings.Compare(a.ID, b.ID)
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// series turns per-season values into a season-ordered series.
func series(values map[string]int) []types.SeasonPoint {
	out := make([]types.SeasonPoint, 0, len(values))
	for season, v := range values {
		out = append(out, types.SeasonPoint{Season: season, Value: v})
	}
	slices.SortFunc(out, func(a, b types.SeasonPoint) int { return CompareSeasons(a.Season, b.Season) })
	return out
}

// CompareSeasons orders season labels. Integer labels compare numerically and
// sort before any other label; the rest compare lexically.
func CompareSeasons(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(ai, bi)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
