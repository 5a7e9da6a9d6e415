package storage

import (
	"context"
	"errors"
	"strings"

	logx "marquee/pkg/logx"
)

// Store is the persistence API for generated schedules.
// SaveDay replaces any previously archived record for the same date
// (regeneration overwrites).
type Store interface {
	SaveDay(ctx context.Context, rec DayRecord) error
	LoadDay(ctx context.Context, date string) (DayRecord, bool, error)
	Dates(ctx context.Context) ([]string, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if storage is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}
