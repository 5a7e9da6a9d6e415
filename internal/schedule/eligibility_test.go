package schedule

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEligibilityBoundary(t *testing.T) {
	t.Parallel()
	release := day(2024, 12, 1)
	movies := []Movie{{Title: "one-weeker", Runtime: 90 * time.Minute, ReleaseDate: release, Weeks: 1}}

	// Inclusive on both ends: release day through release+7.
	for off := 0; off <= 7; off++ {
		if got := activeMovies(movies, release.AddDate(0, 0, off)); len(got) != 1 {
			t.Fatalf("day +%d: expected active, got %d movies", off, len(got))
		}
	}
	if got := activeMovies(movies, release.AddDate(0, 0, -1)); len(got) != 0 {
		t.Fatal("active before release")
	}
	if got := activeMovies(movies, release.AddDate(0, 0, 8)); len(got) != 0 {
		t.Fatal("active after run end")
	}
}

func TestTierAssignment(t *testing.T) {
	t.Parallel()
	release := day(2024, 11, 1)
	m := Movie{Title: "x", Runtime: 100 * time.Minute, ReleaseDate: release, Weeks: 10}

	tests := []struct {
		name   string
		offset int // days after release
		want   Tier
	}{
		{name: "release day", offset: 0, want: TierLaunch},
		{name: "end of week two", offset: 13, want: TierLaunch},
		{name: "start of week three", offset: 14, want: TierMidRun},
		{name: "end of week four", offset: 27, want: TierMidRun},
		{name: "week five", offset: 28, want: TierLongTail},
		{name: "deep in the run", offset: 60, want: TierLongTail},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := activeMovies([]Movie{m}, release.AddDate(0, 0, tt.offset))
			if len(got) != 1 {
				t.Fatalf("expected active movie, got %d", len(got))
			}
			if got[0].Tier != tt.want {
				t.Fatalf("tier = %v, want %v", got[0].Tier, tt.want)
			}
		})
	}
}

func TestValidateCatalogFailsClosed(t *testing.T) {
	t.Parallel()
	good := Movie{Title: "ok", Runtime: 90 * time.Minute, ReleaseDate: day(2024, 12, 1), Weeks: 2}
	tests := []struct {
		name string
		bad  Movie
	}{
		{name: "no title", bad: Movie{Runtime: time.Hour, ReleaseDate: day(2024, 12, 1), Weeks: 1}},
		{name: "zero runtime", bad: Movie{Title: "z", ReleaseDate: day(2024, 12, 1), Weeks: 1}},
		{name: "no release date", bad: Movie{Title: "z", Runtime: time.Hour, Weeks: 1}},
		{name: "zero weeks", bad: Movie{Title: "z", Runtime: time.Hour, ReleaseDate: day(2024, 12, 1)}},
		{name: "duplicate title", bad: good},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog([]Movie{good, tt.bad})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrBadConfig) {
				t.Fatalf("error %v does not match ErrBadConfig", err)
			}
		})
	}

	if err := ValidateCatalog([]Movie{good}); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}
}
