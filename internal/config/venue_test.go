package config

import (
	"errors"
	"testing"
	"time"

	"marquee/internal/schedule"
)

func baseConfig() *Config {
	return &Config{
		Hours: []HoursEntry{
			{Day: "Weekday", Open: "10:00", Close: "23:00"},
			{Day: "Weekend", Open: "09:00", Close: "23:30"},
		},
		Auditoriums: []AuditoriumEntry{{Room: 1, SizeRank: 1}, {Room: 2, SizeRank: 2}},
		Movies: []MovieEntry{
			{Title: "Example", Runtime: 120, ReleaseDate: "2024-12-20", Weeks: 4},
		},
	}
}

func TestHoursTable(t *testing.T) {
	t.Parallel()
	hours, err := baseConfig().HoursTable()
	if err != nil {
		t.Fatalf("HoursTable: %v", err)
	}
	w, ok := hours[schedule.Weekday]
	if !ok {
		t.Fatal("missing weekday window")
	}
	if w.Open.String() != "10:00" || w.Close.String() != "23:00" {
		t.Fatalf("weekday window = %s-%s", w.Open, w.Close)
	}
}

func TestHoursTableRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown day class", mutate: func(c *Config) { c.Hours[0].Day = "Holiday" }},
		{name: "duplicate class", mutate: func(c *Config) { c.Hours[1].Day = "Weekday" }},
		{name: "bad open", mutate: func(c *Config) { c.Hours[0].Open = "10am" }},
		{name: "bad close", mutate: func(c *Config) { c.Hours[0].Close = "25:00" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			if _, err := cfg.HoursTable(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCatalogParsesAndFailsClosed(t *testing.T) {
	t.Parallel()
	movies, err := baseConfig().Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("got %d movies", len(movies))
	}
	if movies[0].Runtime != 120*time.Minute {
		t.Fatalf("runtime = %v", movies[0].Runtime)
	}
	want := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	if !movies[0].ReleaseDate.Equal(want) {
		t.Fatalf("release date = %v", movies[0].ReleaseDate)
	}

	// A malformed release date is a hard error, never a silent skip.
	bad := baseConfig()
	bad.Movies[0].ReleaseDate = "next friday"
	if _, err := bad.Catalog(); err == nil {
		t.Fatal("expected error for malformed release date")
	}

	// Catalog-level validation flows through too.
	dup := baseConfig()
	dup.Movies = append(dup.Movies, dup.Movies[0])
	_, err = dup.Catalog()
	if !errors.Is(err, schedule.ErrBadConfig) {
		t.Fatalf("error %v does not match ErrBadConfig", err)
	}
}

func TestParseDurationHelpers(t *testing.T) {
	t.Parallel()
	d, err := ParseDurationField("x", "90s")
	if err != nil || d != 90*time.Second {
		t.Fatalf("ParseDurationField = %v, %v", d, err)
	}
	if _, err := ParseDurationField("x", "-1s"); err == nil {
		t.Fatal("expected error for negative duration")
	}
	d, err = ParseDurationOrDefault("x", "", time.Minute)
	if err != nil || d != time.Minute {
		t.Fatalf("ParseDurationOrDefault = %v, %v", d, err)
	}
}
