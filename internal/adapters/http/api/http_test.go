package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/innings/internal/adapters/http/api"
	service "github.com/okian/innings/internal/app"
	"github.com/okian/innings/internal/domain/model"
	"github.com/okian/innings/internal/domain/types"
	"github.com/okian/innings/internal/domain/views"
	"github.com/okian/innings/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// mockDeps records the last view request and returns canned data.
type mockDeps struct {
	lastParams views.Params
	lastView   views.ID
	viewErr    error
	teams      map[string]types.TeamSummary
	matches    []model.Match
	maxTopN    int
	err        error
}

func (m *mockDeps) View(_ context.Context, id views.ID, p views.Params) (views.Result, error) {
	m.lastView, m.lastParams = id, p
	if m.viewErr != nil {
		return views.Result{}, m.viewErr
	}
	return views.Result{
		View:    id.String(),
		Title:   id.Title(),
		Kind:    id.Kind(),
		Ranking: []types.RankedEntry{{Rank: 1, ID: "V Kohli", Total: 5412}},
	}, nil
}

func (m *mockDeps) DefaultParams(id views.ID) views.Params {
	p := views.Params{TopN: 10, LowOver: 16, HighOver: 20}
	if id == views.Overview {
		p.TopN = m.PreviewRows()
	}
	return p
}

func (m *mockDeps) MaxTopN() int {
	if m.maxTopN > 0 {
		return m.maxTopN
	}
	return 100
}

func (m *mockDeps) PreviewRows() int { return 2 }

func (m *mockDeps) Team(_ context.Context, team string) (types.TeamSummary, error) {
	if m.err != nil {
		return types.TeamSummary{}, m.err
	}
	if s, ok := m.teams[team]; ok {
		return s, nil
	}
	return types.TeamSummary{Team: team, WinsBySeason: []types.SeasonPoint{}}, nil
}

func (m *mockDeps) Teams(context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []string{"Chennai Super Kings", "Mumbai Indians"}, nil
}

func (m *mockDeps) Summary(context.Context) (types.DatasetSummary, error) {
	if m.err != nil {
		return types.DatasetSummary{}, m.err
	}
	return types.DatasetSummary{TotalMatches: 636, UniquePlayers: 461, Seasons: 10, Teams: 14}, nil
}

func (m *mockDeps) Preview(_ context.Context, n int) ([]model.Match, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.matches[:min(n, len(m.matches))], nil
}

type mockStatsProvider struct {
	stats map[string]any
}

func (m *mockStatsProvider) GetStats() map[string]any {
	return m.stats
}

func newMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]any{"started": true}}).Register(context.Background(), mux)
	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func fixtureDeps() *mockDeps {
	return &mockDeps{
		teams: map[string]types.TeamSummary{
			"Mumbai Indians": {
				Team: "Mumbai Indians", MatchesPlayed: 4, Wins: 3, Losses: 1,
				WinsBySeason: []types.SeasonPoint{{Season: "2017", Value: 3}},
			},
		},
		matches: []model.Match{
			{ID: "1", Season: "2017", Team1: "SRH", Team2: "RCB", Winner: "SRH", Venue: "Hyderabad"},
			{ID: "2", Season: "2017", Team1: "MI", Team2: "RPS", Winner: "RPS", Venue: "Pune"},
			{ID: "3", Season: "2017", Team1: "GL", Team2: "KKR", Winner: "KKR", Venue: "Rajkot"},
		},
	}
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := fixtureDeps()
		mux := newMux(deps)

		Convey("Then health serves the metrics exposition", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then stats returns the provider map", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then the dashboard serves the sidebar page", func() {
			w := get(mux, "/dashboard")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `id="menu"`)
		})

		Convey("Then unknown paths are not found", func() {
			So(get(mux, "/unknown").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then non-GET methods are rejected", func() {
			req := httptest.NewRequest(http.MethodPost, "/summary", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestViewsHandler(t *testing.T) {
	Convey("Given the views endpoints", t, func() {
		deps := fixtureDeps()
		mux := newMux(deps)

		Convey("When listing views", func() {
			w := get(mux, "/views")
			var list []map[string]string
			So(json.Unmarshal(w.Body.Bytes(), &list), ShouldBeNil)

			Convey("Then every view is listed in menu order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(list, ShouldHaveLength, len(views.All()))
				So(list[0]["id"], ShouldEqual, "overview")
			})
		})

		Convey("When fetching a view without parameters", func() {
			w := get(mux, "/views/top_batsmen")

			Convey("Then the defaults are used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastView, ShouldEqual, views.TopBatsmen)
				So(deps.lastParams, ShouldResemble, views.Params{TopN: 10, LowOver: 16, HighOver: 20})
				So(w.Body.String(), ShouldContainSubstring, `"V Kohli"`)
			})
		})

		Convey("When the maximum is below the default limit", func() {
			deps.maxTopN = 5

			Convey("Then a request without a limit still succeeds", func() {
				So(get(mux, "/views/top_batsmen").Code, ShouldEqual, http.StatusOK)
				So(get(mux, "/views/top_batsmen?limit=6").Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When fetching the overview without a limit", func() {
			w := get(mux, "/views/overview")

			Convey("Then the preview length is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastView, ShouldEqual, views.Overview)
				So(deps.lastParams.TopN, ShouldEqual, 2)
			})
		})

		Convey("When fetching a view with parameters", func() {
			w := get(mux, "/views/death_economy?limit=0&low=15&high=19")

			Convey("Then they are passed through", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastParams, ShouldResemble, views.Params{TopN: 0, LowOver: 15, HighOver: 19})
			})
		})

		Convey("When the view is unknown", func() {
			So(get(mux, "/views/most_ducks").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When parameters are malformed", func() {
			for _, target := range []string{
				"/views/top_sixes?limit=abc",
				"/views/top_sixes?limit=-1",
				"/views/top_sixes?limit=101",
				"/views/death_dismissals?low=x",
				"/views/death_dismissals?high=0",
			} {
				So(get(mux, target).Code, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When the dataset is not loaded", func() {
			deps.viewErr = service.ErrNotLoaded

			Convey("Then the service is unavailable", func() {
				So(get(mux, "/views/seasons").Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When the query fails unexpectedly", func() {
			deps.viewErr = errors.New("boom")

			Convey("Then an internal error is returned", func() {
				w := get(mux, "/views/seasons")
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "internal_error")
			})
		})
	})
}

func TestTeamsHandler(t *testing.T) {
	Convey("Given the teams endpoints", t, func() {
		deps := fixtureDeps()
		mux := newMux(deps)

		Convey("When listing teams", func() {
			w := get(mux, "/teams")

			Convey("Then the names are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "Mumbai Indians")
			})
		})

		Convey("When fetching a known team", func() {
			w := get(mux, "/teams/Mumbai%20Indians")
			var body map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then the record and percentage are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body["team"], ShouldEqual, "Mumbai Indians")
				So(body["win_percentage"], ShouldEqual, 75.0)
				So(body["matches_played"], ShouldEqual, 4.0)
			})
		})

		Convey("When the team played no match", func() {
			w := get(mux, "/teams/Deccan%20Chargers")

			Convey("Then it is not found and no percentage is written", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldNotContainSubstring, "win_percentage")
			})
		})

		Convey("When a team has matches but no wins", func() {
			deps.teams["Pune Warriors"] = types.TeamSummary{
				Team: "Pune Warriors", MatchesPlayed: 2, Losses: 2, WinsBySeason: []types.SeasonPoint{},
			}
			w := get(mux, "/teams/Pune%20Warriors")
			var body map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)

			Convey("Then the percentage is zero, not null", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body["win_percentage"], ShouldEqual, 0.0)
			})
		})

		Convey("When the service fails", func() {
			deps.err = service.ErrNotLoaded
			So(get(mux, "/teams").Code, ShouldEqual, http.StatusServiceUnavailable)
			So(get(mux, "/teams/Mumbai%20Indians").Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestDatasetHandler(t *testing.T) {
	Convey("Given the dataset endpoints", t, func() {
		deps := fixtureDeps()
		mux := newMux(deps)

		Convey("When asking for the summary", func() {
			w := get(mux, "/summary")

			Convey("Then the headline numbers are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"total_matches":636`)
			})
		})

		Convey("When asking for matches without a limit", func() {
			var got []model.Match
			w := get(mux, "/matches")
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then the preview length is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(got, ShouldHaveLength, 2)
			})
		})

		Convey("When asking for matches with bad limits", func() {
			So(get(mux, "/matches?limit=abc").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/matches?limit=1000").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler behind the request-id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = api.RequestIDFromContext(r.Context())
		}))

		Convey("When the client sends no id", func() {
			w := get(h, "/")

			Convey("Then a new one is generated and echoed", func() {
				So(seen, ShouldNotBeEmpty)
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("When the client sends an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is propagated", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})
	})
}
