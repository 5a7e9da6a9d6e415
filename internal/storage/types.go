package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures the schedule archive.
//
// Driver values:
//   - "file": dependency-free backend (one JSON document per day)
//   - "sqlite": SQLite database file
//
// If Driver is empty or "none", storage is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// DayRecord is one archived day of generated showtimes.
// Keep it compact and schema-stable: collaborators (booking, display)
// read these records.
type DayRecord struct {
	Date        string       `json:"date"` // "2006-01-02"
	GeneratedAt time.Time    `json:"generated_at"`
	Showings    []ShowingRow `json:"showings"`
}

// ShowingRow is a flat archived showing. Start is grid-aligned "HH:MM".
type ShowingRow struct {
	Title string `json:"title"`
	Room  int    `json:"room"`
	Start string `json:"start"`
}
