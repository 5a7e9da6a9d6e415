package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBadConfig marks fatal configuration problems (missing operating
	// window, malformed catalog entry). Never retried.
	ErrBadConfig = errors.New("bad schedule config")

	// ErrInfeasible marks a day whose mandatory quotas cannot all be met.
	// The engine retries with alternate placement orders before surfacing it.
	ErrInfeasible = errors.New("schedule infeasible")
)

// InfeasibleError names the day and title that could not reach quota.
type InfeasibleError struct {
	Date  time.Time
	Title string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no feasible schedule for %s on %s", e.Title, dateKey(e.Date))
}

func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasible }

func badConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadConfig, fmt.Sprintf(format, args...))
}
