package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/innings/internal/domain/model"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 4096

// ReadMatches parses a matches CSV stream.
func ReadMatches(ctx context.Context, r io.Reader) ([]model.Match, error) {
	var out []model.Match
	err := readTable(ctx, TableMatches, r, MatchColumns, func(cols columnIndex, row []string, line int) error {
		m := model.Match{
			ID:     cols.get(row, colID),
			Season: cols.get(row, colSeason),
			Team1:  cols.get(row, colTeam1),
			Team2:  cols.get(row, colTeam2),
			Winner: cols.get(row, colWinner),
			Venue:  cols.get(row, colVenue),
		}
		if err := validateMatch(m); err != nil {
			return rowError(TableMatches, line, err)
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Match{}
	}
	return out, nil
}

// ReadDeliveries parses a deliveries CSV stream.
func ReadDeliveries(ctx context.Context, r io.Reader) ([]model.Delivery, error) {
	var out []model.Delivery
	err := readTable(ctx, TableDeliveries, r, DeliveryColumns, func(cols columnIndex, row []string, line int) error {
		d := model.Delivery{
			MatchID:         cols.get(row, colMatchID),
			Batsman:         cols.get(row, colBatsman),
			Bowler:          cols.get(row, colBowler),
			PlayerDismissed: cols.get(row, colPlayerDismissed),
		}
		var err error
		if d.Over, err = parseCount(cols.get(row, colOver), colOver, 1); err != nil {
			return rowError(TableDeliveries, line, err)
		}
		if d.BatsmanRuns, err = parseCount(cols.get(row, colBatsmanRuns), colBatsmanRuns, 0); err != nil {
			return rowError(TableDeliveries, line, err)
		}
		if d.TotalRuns, err = parseCount(cols.get(row, colTotalRuns), colTotalRuns, 0); err != nil {
			return rowError(TableDeliveries, line, err)
		}
		switch {
		case d.Batsman == "":
			return rowError(TableDeliveries, line, errors.New("batsman is empty"))
		case d.Bowler == "":
			return rowError(TableDeliveries, line, errors.New("bowler is empty"))
		}
		out = append(out, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Delivery{}
	}
	return out, nil
}

// readTable drives the csv.Reader: header first, then one callback per row.
func readTable(
	ctx context.Context,
	table string,
	r io.Reader,
	required []string,
	row func(cols columnIndex, row []string, line int) error,
) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: empty file, header row expected", ErrSchemaMismatch, table)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: read header: %v", ErrDataUnavailable, table, err)
	}
	cols, err := indexHeader(table, header, required)
	if err != nil {
		return err
	}

	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, table, err)
		}
		line, _ := cr.FieldPos(0)
		if err := row(cols, rec, line); err != nil {
			return err
		}
	}
}

func validateMatch(m model.Match) error {
	switch {
	case m.Season == "":
		return errors.New("season is empty")
	case m.Team1 == "" || m.Team2 == "":
		return errors.New("team1 and team2 are required")
	case m.Team1 == m.Team2:
		return fmt.Errorf("team1 and team2 are both %q", m.Team1)
	case m.Winner != "" && !m.Involves(m.Winner):
		return fmt.Errorf("winner %q did not play", m.Winner)
	}
	return nil
}

func parseCount(v, col string, minValue int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", col, v)
	}
	if n < minValue {
		return 0, fmt.Errorf("%s: %d is below %d", col, n, minValue)
	}
	return n, nil
}

func rowError(table string, line int, err error) error {
	return fmt.Errorf("%w: %s line %d: %v", ErrSchemaMismatch, table, line, err)
}
