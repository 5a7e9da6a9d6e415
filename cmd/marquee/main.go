package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marquee/internal/config"
	"marquee/internal/schedule"
	"marquee/internal/services/planner"
	"marquee/internal/storage"
	logx "marquee/pkg/logx"
)

func main() {
	var (
		cfgPath string
		daysN   int
		fromStr string
		daemon  bool
	)
	flag.StringVar(&cfgPath, "config", "./marquee.yaml", "path to config file (yaml or json)")
	flag.IntVar(&daysN, "days", 0, "days to generate (one-shot mode; overrides planner.days)")
	flag.StringVar(&fromStr, "from", "", "first day to generate, YYYY-MM-DD (default today)")
	flag.BoolVar(&daemon, "daemon", false, "run as a daemon (cron regeneration + config hot reload)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal: config:", err)
		os.Exit(1)
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File:    logx.FileConfig{Enabled: cfg.Logging.File.Enabled, Path: cfg.Logging.File.Path},
	})
	defer func() { _ = logSvc.Close() }()
	mgr.SetLogger(log)

	if daemon {
		if err := runDaemon(ctx, mgr, cfg, log); err != nil {
			log.Error("daemon failed", logx.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := runOnce(ctx, cfg, daysN, fromStr, log); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

// runOnce generates the requested range and prints the listing, like the
// box-office staff expect to read it.
func runOnce(ctx context.Context, cfg *config.Config, days int, fromStr string, log logx.Logger) error {
	hours, err := cfg.HoursTable()
	if err != nil {
		return err
	}
	movies, err := cfg.Catalog()
	if err != nil {
		return err
	}
	eng, err := schedule.NewEngine(cfg.Lanes(), hours, cfg.EngineOptions(), log)
	if err != nil {
		return err
	}

	if days <= 0 {
		days = cfg.Planner.Days
	}
	if days <= 0 {
		days = 1
	}
	start := time.Now()
	if fromStr != "" {
		start, err = time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -from date %q: %w", fromStr, err)
		}
	}

	sched, err := eng.Generate(ctx, movies, start, days)
	if err != nil {
		return err
	}
	return schedule.WriteListing(os.Stdout, sched)
}

func runDaemon(ctx context.Context, mgr *config.Manager, cfg *config.Config, log logx.Logger) error {
	var st storage.Store
	if cfg.Storage != nil {
		busy, err := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
		if err != nil {
			return err
		}
		st, err = storage.Open(storage.Config{
			Driver:      cfg.Storage.Driver,
			Path:        cfg.Storage.Path,
			BusyTimeout: busy,
		}, log)
		if err != nil {
			return err
		}
		if st != nil {
			defer func() { _ = st.Close() }()
		}
	}

	// Reject a reloaded file that would break generation.
	mgr.SetValidator(func(_ context.Context, c *config.Config) error {
		hours, err := c.HoursTable()
		if err != nil {
			return err
		}
		if _, err := c.Catalog(); err != nil {
			return err
		}
		_, err = schedule.NewEngine(c.Lanes(), hours, c.EngineOptions(), logx.Nop())
		return err
	})

	svc := planner.New(mgr, st, log)
	if err := svc.Start(ctx); err != nil {
		return err
	}

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		_ = mgr.Watch(ctx)
	}()

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = svc.Stop(stopCtx)
	<-watchDone
	return nil
}
