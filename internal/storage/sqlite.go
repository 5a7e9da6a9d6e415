package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	logx "marquee/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db, log: log}

	// Basic pragmas.
	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")
	_, _ = db.Exec("PRAGMA foreign_keys = ON")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) SaveDay(ctx context.Context, rec DayRecord) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	if rec.Date == "" {
		return errors.New("day record has no date")
	}
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM days WHERE date = ?`, rec.Date); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO days(date, generated_at) VALUES(?,?)`,
		rec.Date, rec.GeneratedAt.Format(time.RFC3339Nano),
	); err != nil {
		return err
	}
	for _, row := range rec.Showings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO showings(date, title, room, start) VALUES(?,?,?,?)`,
			rec.Date, row.Title, row.Room, row.Start,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) LoadDay(ctx context.Context, date string) (DayRecord, bool, error) {
	if s == nil || s.db == nil {
		return DayRecord{}, false, ErrDisabled
	}

	var genAt string
	err := s.db.QueryRowContext(ctx, `SELECT generated_at FROM days WHERE date = ?`, date).Scan(&genAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DayRecord{}, false, nil
	}
	if err != nil {
		return DayRecord{}, false, err
	}

	rec := DayRecord{Date: date}
	if t, perr := time.Parse(time.RFC3339Nano, genAt); perr == nil {
		rec.GeneratedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, room, start FROM showings WHERE date = ? ORDER BY title, start`, date)
	if err != nil {
		return DayRecord{}, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var row ShowingRow
		if err := rows.Scan(&row.Title, &row.Room, &row.Start); err != nil {
			return DayRecord{}, false, err
		}
		rec.Showings = append(rec.Showings, row)
	}
	if err := rows.Err(); err != nil {
		return DayRecord{}, false, err
	}
	return rec, true, nil
}

func (s *sqliteStore) Dates(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, ErrDisabled
	}
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM days ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
