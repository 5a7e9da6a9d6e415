package schedule

import (
	"sort"
	"time"
)

type span struct {
	start, end time.Time
}

// laneOccupancy records the showings already placed in one auditorium for
// one day. Owned exclusively by a single day's allocation; no locking.
type laneOccupancy struct {
	room  int
	spans []span
}

// conflicts reports whether a showing [start, end) would come closer than
// one turnover to any placed showing in this lane.
func (o *laneOccupancy) conflicts(start, end time.Time) bool {
	for _, sp := range o.spans {
		if start.Before(sp.end.Add(Turnover)) && sp.start.Before(end.Add(Turnover)) {
			return true
		}
	}
	return false
}

// place records a showing interval, keeping spans ordered by start.
func (o *laneOccupancy) place(start, end time.Time) {
	i := sort.Search(len(o.spans), func(i int) bool {
		return o.spans[i].start.After(start)
	})
	o.spans = append(o.spans, span{})
	copy(o.spans[i+1:], o.spans[i:])
	o.spans[i] = span{start: start, end: end}
}
