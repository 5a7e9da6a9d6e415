package schedule

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	logx "marquee/pkg/logx"
)

// Options tunes a generation run.
//
// Seed makes runs reproducible: the same seed yields the same schedule.
// Each retry attempt derives a fresh placement order from the seed, so the
// worst case is exactly MaxRetries+1 full passes over the requested range.
type Options struct {
	Seed       int64
	MaxRetries int // additional attempts after the first; default 20
	Workers    int // concurrent day allocations; default 1
}

const defaultMaxRetries = 20

// Engine generates conflict-free daily timetables for a fixed venue.
// The venue layout (lanes + hours) is validated once at construction;
// catalogs are supplied per generation call and never mutated.
type Engine struct {
	lanes []Auditorium // sorted by size rank
	hours Hours
	opts  Options
	log   logx.Logger
}

func NewEngine(lanes []Auditorium, hours Hours, opts Options, log logx.Logger) (*Engine, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	if len(lanes) == 0 {
		return nil, badConfig("no auditoriums configured")
	}
	rooms := make(map[int]struct{}, len(lanes))
	for _, l := range lanes {
		if _, dup := rooms[l.Room]; dup {
			return nil, badConfig("duplicate auditorium room %d", l.Room)
		}
		rooms[l.Room] = struct{}{}
	}
	for _, class := range []DayClass{Weekday, Weekend} {
		w, ok := hours[class]
		if !ok {
			return nil, badConfig("no operating hours for %s", class)
		}
		if w.Close <= w.Open {
			return nil, badConfig("%s hours close at or before open", class)
		}
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	ordered := append([]Auditorium(nil), lanes...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].SizeRank < ordered[j].SizeRank })

	return &Engine{lanes: ordered, hours: hours, opts: opts, log: log}, nil
}

// Generate builds a schedule for [start, start+days). Any day that cannot
// satisfy its quotas aborts the attempt and the whole range is regenerated
// with the next placement order; after MaxRetries extra attempts the
// infeasibility surfaces as an InfeasibleError naming the day and title.
func (e *Engine) Generate(ctx context.Context, movies []Movie, start time.Time, days int) (*Schedule, error) {
	if days < 1 {
		days = 1
	}
	if err := ValidateCatalog(movies); err != nil {
		return nil, err
	}
	start = atMidnight(start)

	var lastErr error
	for attempt := 0; attempt <= e.opts.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := e.generateOnce(ctx, movies, start, days, attempt)
		if err == nil {
			if attempt > 0 {
				e.log.Debug("schedule found after retries", logx.Int("attempt", attempt))
			}
			return out, nil
		}
		if !errors.Is(err, ErrInfeasible) {
			return nil, err
		}
		lastErr = err
		e.log.Debug("attempt infeasible, reshuffling", logx.Int("attempt", attempt), logx.Err(err))
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", e.opts.MaxRetries+1, lastErr)
}

// generateOnce runs one attempt over the full range. Days are independent:
// with Workers > 1 they run concurrently, each owning its occupancy state.
func (e *Engine) generateOnce(ctx context.Context, movies []Movie, start time.Time, days, attempt int) (*Schedule, error) {
	scheds := make([]DaySchedule, days)
	errs := make([]error, days)

	allocate := func(i int) {
		date := start.AddDate(0, 0, i)
		w, ok := e.hours.WindowFor(date)
		if !ok {
			errs[i] = badConfig("no operating hours for %s", ClassOf(date))
			return
		}
		// Per-day, per-attempt source: reproducible and free of cross-day
		// contention.
		rng := rand.New(rand.NewSource(e.opts.Seed ^ int64(i)<<16 ^ int64(attempt)))
		scheds[i], errs[i] = allocateDay(date, w, activeMovies(movies, date), e.lanes, rng)
	}

	if e.opts.Workers <= 1 || days == 1 {
		for i := 0; i < days; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			allocate(i)
		}
	} else {
		idx := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < e.opts.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range idx {
					allocate(i)
				}
			}()
		}
		for i := 0; i < days; i++ {
			idx <- i
		}
		close(idx)
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	// Surface the earliest failing day so retries report deterministically.
	for i := 0; i < days; i++ {
		if errs[i] != nil {
			return nil, errs[i]
		}
	}
	return &Schedule{Days: scheds}, nil
}
