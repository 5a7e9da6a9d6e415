// Package schedule is marquee's daily showtime-allocation engine.
//
// # Overview
//
// Given a movie catalog (runtime, release date, run length in weeks) and a
// fixed set of auditoriums with weekday/weekend operating windows, the
// engine produces a conflict-free timetable for a contiguous range of days.
// Titles are grouped into demand tiers by weeks since release (launch,
// midrun, longtail); each tier carries a mandatory per-day showing quota
// (3/2/1). Remaining capacity is filled greedily, midrun catch-up first.
//
// # Placement rules
//
// Every start time sits on a 5-minute grid. Each showing keeps one 5-minute
// turnover gap to the previous and next showing in its auditorium, after
// opening, and before closing. Candidate starts advance by
// runtime + turnover, rounded up to the grid.
//
// # Infeasibility and retries
//
// A day where any active title cannot reach quota is discarded whole; the
// engine regenerates the full range under a different placement order. The
// order is a seeded permutation, so results are reproducible and the retry
// loop has an explicit bound. Exhausting the bound returns an
// InfeasibleError naming the failing day and title.
//
// # Concurrency
//
// Days have no cross-day data dependency. With Options.Workers > 1 they are
// allocated concurrently, each day owning its occupancy state. The engine
// performs no I/O; cancellation comes from the caller's context.
package schedule
