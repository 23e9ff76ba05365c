package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestReadMatches(t *testing.T) {
	ctx := context.Background()

	t.Run("parses rows and maps null winner to empty", func(t *testing.T) {
		in := "season,team1,team2,winner,venue\n2018,T1,T2,T1,V1\n2019,T2,T3,NA,V2\n"
		got, err := ReadMatches(ctx, strings.NewReader(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		if got[0].Winner != "T1" || got[1].Winner != "" {
			t.Errorf("unexpected winners: %q, %q", got[0].Winner, got[1].Winner)
		}
		if got[0].ID != "" {
			t.Errorf("expected empty id without id column, got %q", got[0].ID)
		}
	})

	t.Run("header is case and space insensitive", func(t *testing.T) {
		in := " Season ,TEAM1,team2,Winner,venue\n2018,T1,T2,,V1\n"
		got, err := ReadMatches(ctx, strings.NewReader(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Season != "2018" {
			t.Errorf("expected season 2018, got %q", got[0].Season)
		}
	})

	t.Run("header only yields empty non-nil slice", func(t *testing.T) {
		got, err := ReadMatches(ctx, strings.NewReader("season,team1,team2,winner,venue\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty slice, got %#v", got)
		}
	})

	cases := []struct {
		name string
		in   string
		want error
		msg  string
	}{
		{"missing column", "season,team1,team2,venue\n2018,T1,T2,V\n", ErrSchemaMismatch, "missing columns winner"},
		{"empty file", "", ErrSchemaMismatch, "header row expected"},
		{"same teams", "season,team1,team2,winner,venue\n2018,T1,T1,T1,V\n", ErrSchemaMismatch, "line 2"},
		{"foreign winner", "season,team1,team2,winner,venue\n2018,T1,T2,T9,V\n", ErrSchemaMismatch, "did not play"},
		{"empty season", "season,team1,team2,winner,venue\n,T1,T2,,V\n", ErrSchemaMismatch, "season is empty"},
		{"ragged row", "season,team1,team2,winner,venue\n2018,T1\n", ErrDataUnavailable, "matches"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadMatches(ctx, strings.NewReader(tc.in))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("expected %q in %q", tc.msg, err.Error())
			}
		})
	}
}

func TestReadDeliveries(t *testing.T) {
	ctx := context.Background()
	header := "batsman,bowler,over,batsman_runs,total_runs,player_dismissed\n"

	t.Run("parses numeric columns", func(t *testing.T) {
		got, err := ReadDeliveries(ctx, strings.NewReader(header+"A,B,16,4,5,\nA,B,20,0,0,A\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Over != 16 || got[0].BatsmanRuns != 4 || got[0].TotalRuns != 5 {
			t.Errorf("unexpected first delivery: %+v", got[0])
		}
		if got[0].IsWicket() || !got[1].IsWicket() {
			t.Errorf("unexpected dismissals: %+v", got)
		}
	})

	cases := []struct {
		name string
		row  string
		msg  string
	}{
		{"non-integer over", "A,B,x,0,0,\n", "over"},
		{"zero over", "A,B,0,0,0,\n", "below 1"},
		{"negative runs", "A,B,1,-1,0,\n", "batsman_runs"},
		{"missing total", "A,B,1,1,,\n", "total_runs"},
		{"empty batsman", ",B,1,1,1,\n", "batsman is empty"},
		{"empty bowler", "A,,1,1,1,\n", "bowler is empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadDeliveries(ctx, strings.NewReader(header+tc.row))
			if !errors.Is(err, ErrSchemaMismatch) {
				t.Fatalf("expected schema mismatch, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("expected %q in %q", tc.msg, err.Error())
			}
		})
	}

	t.Run("missing required column", func(t *testing.T) {
		_, err := ReadDeliveries(ctx, strings.NewReader("batter,bowler,over,batsman_runs,total_runs,player_dismissed\n"))
		if !errors.Is(err, ErrSchemaMismatch) || !strings.Contains(err.Error(), "batsman") {
			t.Fatalf("expected missing batsman, got %v", err)
		}
	})

	t.Run("canceled context stops the read", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := ReadDeliveries(cctx, strings.NewReader(header+"A,B,1,1,1,\n"))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestNormalize(t *testing.T) {
	for _, in := range []string{"", " ", "NA", "n/a", "NaN", "null"} {
		if got := normalize(in); got != "" {
			t.Errorf("normalize(%q) = %q, want empty", in, got)
		}
	}
	if got := normalize("  MS Dhoni "); got != "MS Dhoni" {
		t.Errorf("normalize trims, got %q", got)
	}
}

func TestErrorKind(t *testing.T) {
	cases := map[string]error{
		"":                 nil,
		"data_unavailable": ErrDataUnavailable,
		"schema_mismatch":  ErrSchemaMismatch,
		"canceled":         context.Canceled,
		"unknown":          errors.New("other"),
	}
	for want, err := range cases {
		if got := ErrorKind(err); got != want {
			t.Errorf("ErrorKind(%v) = %q, want %q", err, got, want)
		}
	}
}
