package schedule

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func testHours(t *testing.T) Hours {
	t.Helper()
	mustClock := func(s string) Clock {
		c, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		return c
	}
	return Hours{
		Weekday: {Open: mustClock("10:00"), Close: mustClock("23:00")},
		Weekend: {Open: mustClock("09:00"), Close: mustClock("23:30")},
	}
}

func testLanes() []Auditorium {
	return []Auditorium{
		{Room: 1, SizeRank: 1},
		{Room: 2, SizeRank: 2},
		{Room: 3, SizeRank: 3},
	}
}

// start is a Wednesday; a 5-day range crosses into the weekend window.
var testStart = day(2024, 12, 25)

func testCatalog() []Movie {
	return []Movie{
		{Title: "new blockbuster", Runtime: 130 * time.Minute, ReleaseDate: testStart.AddDate(0, 0, -3), Weeks: 8},
		{Title: "fresh indie", Runtime: 95 * time.Minute, ReleaseDate: testStart.AddDate(0, 0, -10), Weeks: 6},
		{Title: "third week drama", Runtime: 110 * time.Minute, ReleaseDate: testStart.AddDate(0, 0, -16), Weeks: 8},
		{Title: "longtail classic", Runtime: 100 * time.Minute, ReleaseDate: testStart.AddDate(0, 0, -40), Weeks: 10},
	}
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	eng, err := NewEngine(testLanes(), testHours(t), opts, nopLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}

// checkInvariants verifies grid alignment, window containment, per-lane
// turnover spacing, and tier quotas for every generated day.
func checkInvariants(t *testing.T, sched *Schedule, hours Hours, movies []Movie) {
	t.Helper()
	for _, ds := range sched.Days {
		w, ok := hours.WindowFor(ds.Date)
		if !ok {
			t.Fatalf("no window for %v", ds.Date)
		}
		open, close := w.Open.On(ds.Date), w.Close.On(ds.Date)

		perLane := map[int][]Showing{}
		for title, ss := range ds.Showings {
			for _, sh := range ss {
				if sh.Title != title {
					t.Fatalf("showing filed under %q carries title %q", title, sh.Title)
				}
				if sh.Start.Minute()%5 != 0 || sh.Start.Second() != 0 {
					t.Fatalf("%s: start %v not grid aligned", title, sh.Start)
				}
				if sh.Start.Before(open.Add(Turnover)) {
					t.Fatalf("%s: starts %v, before open+turnover", title, sh.Start)
				}
				if sh.End().Add(Turnover).After(close) {
					t.Fatalf("%s: ends %v, overruns close", title, sh.End())
				}
				perLane[sh.Room] = append(perLane[sh.Room], sh)
			}
		}
		for room, ss := range perLane {
			for i := range ss {
				for j := i + 1; j < len(ss); j++ {
					a, b := ss[i], ss[j]
					if a.Start.Before(b.End().Add(Turnover)) && b.Start.Before(a.End().Add(Turnover)) {
						t.Fatalf("room %d: %s@%v and %s@%v violate turnover",
							room, a.Title, a.Start, b.Title, b.Start)
					}
				}
			}
		}

		for _, tm := range activeMovies(movies, ds.Date) {
			if got := len(ds.Showings[tm.Title]); got < tm.Tier.Quota() {
				t.Fatalf("%s (%s) got %d showings on %v, quota %d",
					tm.Title, tm.Tier, got, ds.Date, tm.Tier.Quota())
			}
		}
	}
}

func TestGenerateSatisfiesInvariants(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t, Options{Seed: 1})
	movies := testCatalog()

	sched, err := eng.Generate(context.Background(), movies, testStart, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(sched.Days) != 5 {
		t.Fatalf("got %d days, want 5", len(sched.Days))
	}
	for i, ds := range sched.Days {
		want := testStart.AddDate(0, 0, i)
		if !ds.Date.Equal(want) {
			t.Fatalf("day %d date = %v, want %v", i, ds.Date, want)
		}
	}
	checkInvariants(t, sched, testHours(t), movies)
}

func TestGenerateMidRunCatchUp(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t, Options{Seed: 3})
	movies := testCatalog()

	sched, err := eng.Generate(context.Background(), movies, testStart, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Roomy venue: the MidRun title should reach the secondary target.
	if got := len(sched.Days[0].Showings["third week drama"]); got < secondaryTarget {
		t.Fatalf("midrun title got %d showings, want >= %d", got, secondaryTarget)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	t.Parallel()
	movies := testCatalog()

	a, err := newTestEngine(t, Options{Seed: 42}).Generate(context.Background(), movies, testStart, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := newTestEngine(t, Options{Seed: 42}).Generate(context.Background(), movies, testStart, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a.Encode(), b.Encode()) {
		t.Fatal("same seed produced different schedules")
	}
}

func TestGenerateParallelDays(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t, Options{Seed: 7, Workers: 4})
	movies := testCatalog()

	sched, err := eng.Generate(context.Background(), movies, testStart, 8)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(sched.Days) != 8 {
		t.Fatalf("got %d days, want 8", len(sched.Days))
	}
	checkInvariants(t, sched, testHours(t), movies)
}

func TestGenerateInfeasibleUndersizedVenue(t *testing.T) {
	t.Parallel()
	// One lane, 8-hour window: two launch titles needing 3 showings of
	// 2h each cannot fit. The engine must fail the day, not half-commit.
	mustClock := func(s string) Clock {
		c, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock: %v", err)
		}
		return c
	}
	hours := Hours{
		Weekday: {Open: mustClock("10:00"), Close: mustClock("18:00")},
		Weekend: {Open: mustClock("10:00"), Close: mustClock("18:00")},
	}
	eng, err := NewEngine([]Auditorium{{Room: 1, SizeRank: 1}}, hours, Options{Seed: 1, MaxRetries: 3}, nopLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	movies := []Movie{
		{Title: "launch A", Runtime: 120 * time.Minute, ReleaseDate: testStart, Weeks: 4},
		{Title: "launch B", Runtime: 120 * time.Minute, ReleaseDate: testStart, Weeks: 4},
	}

	_, err = eng.Generate(context.Background(), movies, testStart, 1)
	if err == nil {
		t.Fatal("expected infeasibility")
	}
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("error %v does not match ErrInfeasible", err)
	}
	var inf *InfeasibleError
	if !errors.As(err, &inf) {
		t.Fatalf("error %v carries no InfeasibleError", err)
	}
	if !inf.Date.Equal(testStart) {
		t.Fatalf("failing date = %v, want %v", inf.Date, testStart)
	}
	if inf.Title != "launch A" && inf.Title != "launch B" {
		t.Fatalf("unexpected failing title %q", inf.Title)
	}
}

func TestGenerateEmptyDay(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t, Options{Seed: 1})
	// Nothing is running a year before release.
	movies := []Movie{{Title: "future", Runtime: time.Hour, ReleaseDate: testStart.AddDate(1, 0, 0), Weeks: 2}}

	sched, err := eng.Generate(context.Background(), movies, testStart, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sched.Days[0].Total() != 0 {
		t.Fatalf("expected empty day, got %d showings", sched.Days[0].Total())
	}
}

func TestNewEngineRejectsBrokenVenue(t *testing.T) {
	t.Parallel()
	hours := testHours(t)

	tests := []struct {
		name  string
		lanes []Auditorium
		hours Hours
	}{
		{name: "no lanes", lanes: nil, hours: hours},
		{name: "duplicate room", lanes: []Auditorium{{Room: 1}, {Room: 1}}, hours: hours},
		{name: "missing weekend", lanes: testLanes(), hours: Hours{Weekday: hours[Weekday]}},
		{name: "close before open", lanes: testLanes(), hours: Hours{
			Weekday: {Open: hours[Weekday].Close, Close: hours[Weekday].Open},
			Weekend: hours[Weekend],
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.lanes, tt.hours, Options{}, nopLogger())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrBadConfig) {
				t.Fatalf("error %v does not match ErrBadConfig", err)
			}
		})
	}
}

func TestGenerateHonorsContext(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t, Options{Seed: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := eng.Generate(ctx, testCatalog(), testStart, 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
