package views_test

import (
	"errors"
	"testing"

	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/internal/domain/stats"
	"github.com/okian/innings/internal/domain/views"
	. "github.com/smartystreets/goconvey/convey"
)

func sample() *model.Tables {
	return &model.Tables{
		Matches: []model.Match{
			{ID: "1", Season: "2017", Team1: "MI", Team2: "CSK", Winner: "MI", Venue: "Wankhede"},
			{ID: "2", Season: "2017", Team1: "RCB", Team2: "MI", Winner: "RCB", Venue: "Chinnaswamy"},
			{ID: "3", Season: "2018", Team1: "CSK", Team2: "RCB", Winner: "CSK", Venue: "Chepauk"},
		},
		Deliveries: []model.Delivery{
			{MatchID: "1", Batsman: "Rohit", Bowler: "Bravo", Over: 17, BatsmanRuns: 6, TotalRuns: 6},
			{MatchID: "1", Batsman: "Rohit", Bowler: "Bravo", Over: 17, BatsmanRuns: 4, TotalRuns: 4},
			{MatchID: "2", Batsman: "Kohli", Bowler: "Bumrah", Over: 19, BatsmanRuns: 0, TotalRuns: 0, PlayerDismissed: "Kohli"},
			{MatchID: "3", Batsman: "Dhoni", Bowler: "Chahal", Over: 5, BatsmanRuns: 6, TotalRuns: 6},
		},
	}
}

func TestEveryViewRuns(t *testing.T) {
	tables := sample()
	for _, id := range views.All() {
		res, err := views.Run(tables, id, views.DefaultParams())
		if err != nil {
			t.Errorf("%s: unexpected error %v", id, err)
			continue
		}
		if res.View != id.String() || res.Title == "" || res.Kind != id.Kind() {
			t.Errorf("%s: bad header %+v", id, res)
		}
		back, err := views.ParseID(id.String())
		if err != nil || back != id {
			t.Errorf("ParseID(%q) = %v, %v", id.String(), back, err)
		}
	}
}

func TestRun(t *testing.T) {
	Convey("Given a small dataset", t, func() {
		tables := sample()

		Convey("When running the seasons view", func() {
			res, err := views.Run(tables, views.Seasons, views.DefaultParams())

			Convey("Then a series is returned", func() {
				So(err, ShouldBeNil)
				So(res.Kind, ShouldEqual, views.KindSeries)
				So(res.Series, ShouldHaveLength, 2)
				So(res.Series[0].Value, ShouldEqual, 2)
			})
		})

		Convey("When running top sixes with topN 1", func() {
			res, err := views.Run(tables, views.TopSixes, views.Params{TopN: 1})

			Convey("Then the lower identifier wins the tie", func() {
				So(err, ShouldBeNil)
				So(res.Ranking, ShouldHaveLength, 1)
				So(res.Ranking[0].ID, ShouldEqual, "Dhoni")
			})
		})

		Convey("When running death dismissals", func() {
			res, err := views.Run(tables, views.DeathDismissals, views.DefaultParams())

			Convey("Then only death-over bowlers appear", func() {
				So(err, ShouldBeNil)
				So(res.Ranking[0].ID, ShouldEqual, "Bumrah")
				for _, e := range res.Ranking {
					So(e.ID, ShouldNotEqual, "Chahal")
				}
			})
		})

		Convey("When the death window is inverted", func() {
			res, err := views.Run(tables, views.DeathEconomy, views.Params{TopN: 10, LowOver: 20, HighOver: 16})

			Convey("Then the ranking is empty", func() {
				So(err, ShouldBeNil)
				So(res.Ranking, ShouldBeEmpty)
			})
		})

		Convey("When running the overview", func() {
			res, err := views.Run(tables, views.Overview, views.Params{TopN: 2})

			Convey("Then the first rows are previewed", func() {
				So(err, ShouldBeNil)
				So(res.Matches, ShouldHaveLength, 2)
			})
		})

		Convey("When the id is outside the enumeration", func() {
			_, err := views.Run(tables, views.ID(42), views.DefaultParams())

			Convey("Then ErrUnknownView is returned", func() {
				So(errors.Is(err, views.ErrUnknownView), ShouldBeTrue)
			})
		})
	})
}

func TestParseID(t *testing.T) {
	Convey("Given an unknown view name", t, func() {
		_, err := views.ParseID("most_ducks")

		Convey("Then it is rejected", func() {
			So(errors.Is(err, views.ErrUnknownView), ShouldBeTrue)
		})
	})

	Convey("Given the menu", t, func() {
		ids := views.All()

		Convey("Then it starts with the overview and ends with economy", func() {
			So(ids[0], ShouldEqual, views.Overview)
			So(ids[len(ids)-1], ShouldEqual, views.DeathEconomy)
			So(views.ID(-1).Valid(), ShouldBeFalse)
			So(views.ID(-1).Title(), ShouldBeEmpty)
		})
	})
}

func TestDefaultParams(t *testing.T) {
	p := views.DefaultParams()
	if p.TopN != stats.DefaultTopN || p.LowOver != 16 || p.HighOver != 20 {
		t.Errorf("unexpected defaults %+v", p)
	}
}
