package schedule

import "time"

// RoundUpToGrid returns the smallest instant >= t whose minute-of-hour is a
// multiple of the grid, with seconds and below zeroed. Total over all inputs.
func RoundUpToGrid(t time.Time) time.Time {
	floor := t.Truncate(time.Minute)
	if floor.Before(t) {
		floor = floor.Add(time.Minute)
	}
	step := int(Grid / time.Minute)
	if rem := floor.Minute() % step; rem != 0 {
		floor = floor.Add(time.Duration(step-rem) * time.Minute)
	}
	return floor
}
