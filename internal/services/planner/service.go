package planner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"marquee/internal/config"
	"marquee/internal/schedule"
	"marquee/internal/storage"
	logx "marquee/pkg/logx"
)

const (
	defaultSpec              = "@daily"
	defaultHorizonDays       = 7
	defaultReloadMinInterval = 30 * time.Second
)

// Service regenerates the showtime schedule on a cron trigger and whenever
// the venue config hot-reloads. Each regeneration covers a forward horizon
// of days and archives every day to the store.
type Service struct {
	mu sync.Mutex

	log logx.Logger
	mgr *config.Manager
	st  storage.Store

	parser cron.Parser
	c      *cron.Cron
	loc    *time.Location

	// Reload-triggered regenerations are rate limited so editor write
	// storms don't thrash the engine.
	limiter *rate.Limiter

	sub    chan *config.Config
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(mgr *config.Manager, st storage.Store, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		log: log,
		mgr: mgr,
		st:  st,
		// SecondOptional allows both 5-field and 6-field (with seconds) cron specs.
		parser: cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// Start generates the initial horizon immediately, then arms the cron
// trigger and the config-reload listener.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}

	cfg := s.mgr.Get()
	if cfg == nil {
		return errors.New("planner: no config loaded")
	}
	pc := cfg.Planner

	loc := time.Local
	if tz := strings.TrimSpace(pc.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return err
		}
		loc = l
	}
	s.loc = loc

	every, err := config.ParseDurationOrDefault("planner.reload_min_interval", pc.ReloadMinInterval, defaultReloadMinInterval)
	if err != nil {
		return err
	}
	s.limiter = rate.NewLimiter(rate.Every(every), 1)

	spec := strings.TrimSpace(pc.Spec)
	if spec == "" {
		spec = defaultSpec
	}

	s.c = cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	if _, err := s.c.AddFunc(spec, func() { s.regenerate(runCtx, "cron") }); err != nil {
		cancel()
		s.c = nil
		return err
	}

	// First horizon before the first tick.
	s.regenerate(ctx, "startup")

	s.c.Start()
	s.log.Info("planner started", logx.String("spec", spec), logx.String("tz", loc.String()))

	s.sub = s.mgr.Subscribe(1)
	s.wg.Add(1)
	go s.reloadLoop(runCtx, s.sub)
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.c
	s.c = nil
	cancel := s.cancel
	s.cancel = nil
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if c != nil {
		stopped := c.Stop()
		select {
		case <-stopped.Done():
		case <-ctx.Done():
		}
	}
	if cancel != nil {
		cancel()
	}
	if sub != nil {
		s.mgr.Unsubscribe(sub)
	}
	s.wg.Wait()
	return nil
}

func (s *Service) reloadLoop(ctx context.Context, sub chan *config.Config) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub:
			if !ok {
				return
			}
			// Wait out the rate limit, then regenerate from the freshest
			// committed config (not the possibly stale queued one).
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
			s.regenerate(ctx, "reload")
		}
	}
}

// regenerate builds the engine from the current config and re-plans the
// horizon starting today. Failures are logged, never fatal to the daemon.
func (s *Service) regenerate(ctx context.Context, reason string) {
	cfg := s.mgr.Get()
	if cfg == nil {
		return
	}
	started := time.Now()

	hours, err := cfg.HoursTable()
	if err != nil {
		s.log.Error("regeneration skipped: bad hours", logx.String("reason", reason), logx.Err(err))
		return
	}
	movies, err := cfg.Catalog()
	if err != nil {
		s.log.Error("regeneration skipped: bad catalog", logx.String("reason", reason), logx.Err(err))
		return
	}
	eng, err := schedule.NewEngine(cfg.Lanes(), hours, cfg.EngineOptions(), s.log)
	if err != nil {
		s.log.Error("regeneration skipped: bad venue", logx.String("reason", reason), logx.Err(err))
		return
	}

	days := cfg.Planner.Days
	if days <= 0 {
		days = defaultHorizonDays
	}
	today := time.Now().In(s.loc)

	sched, err := eng.Generate(ctx, movies, today, days)
	if err != nil {
		var inf *schedule.InfeasibleError
		if errors.As(err, &inf) {
			s.log.Error("schedule infeasible",
				logx.String("reason", reason),
				logx.Time("day", inf.Date),
				logx.String("title", inf.Title))
		} else {
			s.log.Error("regeneration failed", logx.String("reason", reason), logx.Err(err))
		}
		return
	}

	archived := 0
	if s.st != nil {
		for _, day := range sched.Days {
			if err := s.st.SaveDay(ctx, storage.FromDay(day, started)); err != nil {
				s.log.Warn("archive write failed", logx.Time("day", day.Date), logx.Err(err))
				continue
			}
			archived++
		}
	}

	total := 0
	for _, day := range sched.Days {
		total += day.Total()
	}
	s.log.Info("schedule regenerated",
		logx.String("reason", reason),
		logx.Int("days", len(sched.Days)),
		logx.Int("showings", total),
		logx.Int("archived", archived),
		logx.Duration("took", time.Since(started)))
}
