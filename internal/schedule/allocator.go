package schedule

import (
	"math/rand"
	"sort"
	"time"
)

// dayAllocator places one day's showings. All state here is private to a
// single Generate attempt for a single day.
type dayAllocator struct {
	open   time.Time
	close  time.Time
	lanes  []laneOccupancy // ordered by size rank
	placed map[string][]Showing
}

// allocateDay runs the two-pass placement policy for one calendar day.
//
// Pass 1 places each active title's mandatory quota (tiers in ascending
// rank, newest release first, remaining ties broken by the attempt's
// permutation). Any title that cannot reach quota makes the whole day
// infeasible; nothing is committed.
//
// Pass 2 tops MidRun titles up toward the secondary target, then fills the
// remaining capacity with Launch titles round-robin until a full sweep
// places nothing.
func allocateDay(date time.Time, w Window, movies []tieredMovie, lanes []Auditorium, rng *rand.Rand) (DaySchedule, error) {
	a := &dayAllocator{
		open:   w.Open.On(date),
		close:  w.Close.On(date),
		lanes:  make([]laneOccupancy, len(lanes)),
		placed: make(map[string][]Showing, len(movies)),
	}
	for i, l := range lanes {
		a.lanes[i] = laneOccupancy{room: l.Room}
	}

	order := placementOrder(movies, rng)

	// Pass 1: mandatory quotas.
	for _, mi := range order {
		m := movies[mi]
		got := a.placeUpTo(m.Movie, m.Tier.Quota())
		if got < m.Tier.Quota() {
			return DaySchedule{}, &InfeasibleError{Date: date, Title: m.Title}
		}
	}

	// Pass 2: MidRun catch-up first, then Launch fill.
	for _, mi := range order {
		if m := movies[mi]; m.Tier == TierMidRun {
			a.placeUpTo(m.Movie, secondaryTarget)
		}
	}
	for {
		progress := false
		for _, mi := range order {
			m := movies[mi]
			if m.Tier != TierLaunch {
				continue
			}
			before := len(a.placed[m.Title])
			if a.placeUpTo(m.Movie, before+1) > before {
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	for title := range a.placed {
		ss := a.placed[title]
		sort.Slice(ss, func(i, j int) bool { return ss[i].Start.Before(ss[j].Start) })
	}
	return DaySchedule{Date: date, Showings: a.placed}, nil
}

// placementOrder returns movie indexes sorted by tier rank, then newest
// release, then the attempt's random permutation as the final tie-break.
func placementOrder(movies []tieredMovie, rng *rand.Rand) []int {
	perm := rng.Perm(len(movies))
	tie := make([]int, len(movies))
	for rank, mi := range perm {
		tie[mi] = rank
	}
	order := make([]int, len(movies))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := movies[order[i]], movies[order[j]]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if !a.ReleaseDate.Equal(b.ReleaseDate) {
			return a.ReleaseDate.After(b.ReleaseDate)
		}
		return tie[order[i]] < tie[order[j]]
	})
	return order
}

// placeUpTo places showings for m until it has target showings for the day
// or no conflict-free lane/slot pair remains. Returns the showing count
// after placement. Placement is slot-major: each candidate start is tried
// against every lane (size-rank order) before moving to a later start.
func (a *dayAllocator) placeUpTo(m Movie, target int) int {
	count := len(a.placed[m.Title])
	if count >= target {
		return count
	}
	for _, start := range candidateSlots(m.Runtime, a.open, a.close) {
		if count >= target {
			break
		}
		end := start.Add(m.Runtime)
		for li := range a.lanes {
			if a.lanes[li].conflicts(start, end) {
				continue // expected control flow, not an error
			}
			a.lanes[li].place(start, end)
			a.placed[m.Title] = append(a.placed[m.Title], Showing{
				Title:   m.Title,
				Room:    a.lanes[li].room,
				Start:   start,
				Runtime: m.Runtime,
			})
			count++
			break
		}
	}
	return count
}
