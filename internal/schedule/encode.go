package schedule

import (
	"fmt"
	"sort"
	"time"
)

// ShowingRecord is the structured form of one showing: room plus a grid-
// aligned "HH:MM" start. Grid alignment is what makes the format lossless.
type ShowingRecord struct {
	Room  int    `json:"room" yaml:"room"`
	Start string `json:"start" yaml:"start"`
}

// Encoded is the serializable shape of a schedule:
// date ("2006-01-02") -> title -> showings ordered by start.
type Encoded map[string]map[string][]ShowingRecord

// Encode flattens a schedule into its structured form. The caller picks the
// wire format (JSON, YAML, SQL rows); see DecodeSchedule for the inverse.
func (s *Schedule) Encode() Encoded {
	out := make(Encoded, len(s.Days))
	for _, day := range s.Days {
		titles := make(map[string][]ShowingRecord, len(day.Showings))
		for title, ss := range day.Showings {
			recs := make([]ShowingRecord, len(ss))
			for i, sh := range ss {
				recs[i] = ShowingRecord{Room: sh.Room, Start: sh.Start.Format("15:04")}
			}
			titles[title] = recs
		}
		out[dateKey(day.Date)] = titles
	}
	return out
}

// DecodeSchedule rebuilds a schedule from its structured form. Runtimes are
// recovered from the catalog; an unknown title is an error (fails closed,
// like the rest of catalog handling).
func DecodeSchedule(enc Encoded, movies []Movie, loc *time.Location) (*Schedule, error) {
	if loc == nil {
		loc = time.Local
	}
	runtimes := make(map[string]time.Duration, len(movies))
	for _, m := range movies {
		runtimes[m.Title] = m.Runtime
	}

	dates := make([]string, 0, len(enc))
	for d := range enc {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := &Schedule{Days: make([]DaySchedule, 0, len(enc))}
	for _, d := range dates {
		date, err := time.ParseInLocation("2006-01-02", d, loc)
		if err != nil {
			return nil, fmt.Errorf("bad schedule date %q: %w", d, err)
		}
		day := DaySchedule{Date: date, Showings: make(map[string][]Showing, len(enc[d]))}
		for title, recs := range enc[d] {
			rt, ok := runtimes[title]
			if !ok {
				return nil, fmt.Errorf("schedule references unknown title %q", title)
			}
			ss := make([]Showing, len(recs))
			for i, r := range recs {
				c, err := ParseClock(r.Start)
				if err != nil {
					return nil, fmt.Errorf("%s %q: %w", d, title, err)
				}
				ss[i] = Showing{Title: title, Room: r.Room, Start: c.On(date), Runtime: rt}
			}
			sort.Slice(ss, func(i, j int) bool { return ss[i].Start.Before(ss[j].Start) })
			day.Showings[title] = ss
		}
		out.Days = append(out.Days, day)
	}
	return out, nil
}
