package schedule

import "time"

// candidateSlots produces the ordered start instants a showing of the given
// runtime can occupy between open and close. The first slot opens one
// turnover after the doors; each following slot leaves one turnover after
// the previous showing's end, rounded up to the grid. A slot is valid while
// start + runtime + turnover fits before close.
//
// The sequence is finite and deterministic for identical inputs.
func candidateSlots(runtime time.Duration, open, close time.Time) []time.Time {
	var out []time.Time
	start := RoundUpToGrid(open.Add(Turnover))
	for !start.Add(runtime + Turnover).After(close) {
		out = append(out, start)
		next := RoundUpToGrid(start.Add(runtime + Turnover))
		if !next.After(start) {
			// Rounding can never move backwards for positive runtimes, but a
			// stuck step must not loop forever.
			next = start.Add(Grid)
		}
		start = next
	}
	return out
}
