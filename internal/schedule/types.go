package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// Grid is the showtime grid granularity: every start time lands on a
	// multiple of 5 minutes.
	Grid = 5 * time.Minute

	// Turnover is the gap required between consecutive showings in the same
	// auditorium, and the lead-in after opening / lead-out before closing.
	Turnover = 5 * time.Minute
)

// Movie is one catalog entry. Immutable once generation starts.
type Movie struct {
	Title       string
	Runtime     time.Duration
	ReleaseDate time.Time // normalized to a calendar date
	Weeks       int       // run length in weeks
}

// Auditorium is a resource lane that hosts one showing at a time.
// SizeRank orders lanes for placement (1 = largest room, tried first).
type Auditorium struct {
	Room     int
	SizeRank int
}

// Tier classifies demand by weeks since release.
type Tier int

const (
	TierLaunch Tier = iota + 1
	TierMidRun
	TierLongTail
)

func (t Tier) String() string {
	switch t {
	case TierLaunch:
		return "launch"
	case TierMidRun:
		return "midrun"
	case TierLongTail:
		return "longtail"
	default:
		return "tier(" + strconv.Itoa(int(t)) + ")"
	}
}

// Quota is the minimum number of showings per eligible movie per day.
func (t Tier) Quota() int {
	switch t {
	case TierLaunch:
		return 3
	case TierMidRun:
		return 2
	default:
		return 1
	}
}

// secondaryTarget is the Pass-2 top-up target for MidRun titles.
const secondaryTarget = 3

// DayClass selects the operating window for a calendar day.
type DayClass string

const (
	Weekday DayClass = "Weekday"
	Weekend DayClass = "Weekend"
)

// ClassOf returns the day class for a calendar day.
func ClassOf(day time.Time) DayClass {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return Weekend
	default:
		return Weekday
	}
}

// Clock is a time of day as an offset from midnight.
type Clock time.Duration

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q (want HH:MM)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

func (c Clock) String() string {
	d := time.Duration(c)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// On anchors the clock time to a calendar day (in that day's location).
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(time.Duration(c))
}

// Window is an auditorium operating window for one day class.
type Window struct {
	Open  Clock
	Close Clock
}

// Hours maps day classes to operating windows. Both classes must be present.
type Hours map[DayClass]Window

// WindowFor looks up the operating window for a calendar day.
func (h Hours) WindowFor(day time.Time) (Window, bool) {
	w, ok := h[ClassOf(day)]
	return w, ok
}

// Showing is one placed screening. End time derives from Start + Runtime.
type Showing struct {
	Title   string
	Room    int
	Start   time.Time
	Runtime time.Duration
}

func (s Showing) End() time.Time { return s.Start.Add(s.Runtime) }

// DaySchedule holds one day's placements, keyed by title, each list ordered
// by start time.
type DaySchedule struct {
	Date     time.Time
	Showings map[string][]Showing
}

// Titles returns the scheduled titles in lexical order.
func (d DaySchedule) Titles() []string {
	out := make([]string, 0, len(d.Showings))
	for t := range d.Showings {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Total counts all showings across titles.
func (d DaySchedule) Total() int {
	n := 0
	for _, ss := range d.Showings {
		n += len(ss)
	}
	return n
}

// Schedule covers a contiguous range of days, ascending by date.
type Schedule struct {
	Days []DaySchedule
}

// atMidnight truncates t to its calendar day, keeping the location.
func atMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateKey formats a calendar day the way config files and the archive do.
func dateKey(t time.Time) string { return t.Format("2006-01-02") }
