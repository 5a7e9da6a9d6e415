package config

import (
	"fmt"
	"strings"
	"time"

	"marquee/internal/schedule"
)

// HoursTable builds the engine's operating windows. Unknown day classes and
// missing entries are rejected here so a broken file never reaches
// generation.
func (c *Config) HoursTable() (schedule.Hours, error) {
	out := make(schedule.Hours, len(c.Hours))
	for i, e := range c.Hours {
		var class schedule.DayClass
		switch strings.TrimSpace(e.Day) {
		case string(schedule.Weekday):
			class = schedule.Weekday
		case string(schedule.Weekend):
			class = schedule.Weekend
		default:
			return nil, fmt.Errorf("hours[%d]: unknown day class %q", i, e.Day)
		}
		if _, dup := out[class]; dup {
			return nil, fmt.Errorf("hours[%d]: duplicate entry for %s", i, class)
		}
		open, err := schedule.ParseClock(e.Open)
		if err != nil {
			return nil, fmt.Errorf("hours[%d].open: %w", i, err)
		}
		cls, err := schedule.ParseClock(e.Close)
		if err != nil {
			return nil, fmt.Errorf("hours[%d].close: %w", i, err)
		}
		out[class] = schedule.Window{Open: open, Close: cls}
	}
	return out, nil
}

// Lanes converts the auditorium list. Order is preserved; the engine sorts
// by size rank itself.
func (c *Config) Lanes() []schedule.Auditorium {
	out := make([]schedule.Auditorium, len(c.Auditoriums))
	for i, a := range c.Auditoriums {
		out[i] = schedule.Auditorium{Room: a.Room, SizeRank: a.SizeRank}
	}
	return out
}

// Catalog parses the movie list. A row that fails to parse is a hard
// error: scheduling fails closed rather than silently dropping a title.
func (c *Config) Catalog() ([]schedule.Movie, error) {
	out := make([]schedule.Movie, len(c.Movies))
	for i, m := range c.Movies {
		rel, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(m.ReleaseDate), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("movies[%d] (%q): invalid release_date %q", i, m.Title, m.ReleaseDate)
		}
		out[i] = schedule.Movie{
			Title:       m.Title,
			Runtime:     time.Duration(m.Runtime) * time.Minute,
			ReleaseDate: rel,
			Weeks:       m.Weeks,
		}
	}
	if err := schedule.ValidateCatalog(out); err != nil {
		return nil, err
	}
	return out, nil
}

// EngineOptions maps the engine tuning block.
func (c *Config) EngineOptions() schedule.Options {
	return schedule.Options{
		Seed:       c.Engine.Seed,
		MaxRetries: c.Engine.MaxRetries,
		Workers:    c.Engine.Workers,
	}
}
