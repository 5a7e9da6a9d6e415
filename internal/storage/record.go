package storage

import (
	"sort"
	"time"

	"marquee/internal/schedule"
)

// FromDay flattens a generated day into its archive record.
// Rows are ordered by title then start so records diff cleanly.
func FromDay(d schedule.DaySchedule, generatedAt time.Time) DayRecord {
	rec := DayRecord{
		Date:        d.Date.Format("2006-01-02"),
		GeneratedAt: generatedAt,
	}
	for _, title := range d.Titles() {
		for _, sh := range d.Showings[title] {
			rec.Showings = append(rec.Showings, ShowingRow{
				Title: title,
				Room:  sh.Room,
				Start: sh.Start.Format("15:04"),
			})
		}
	}
	sort.SliceStable(rec.Showings, func(i, j int) bool {
		if rec.Showings[i].Title != rec.Showings[j].Title {
			return rec.Showings[i].Title < rec.Showings[j].Title
		}
		return rec.Showings[i].Start < rec.Showings[j].Start
	})
	return rec
}
