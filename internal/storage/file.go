package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	logx "marquee/pkg/logx"
)

// fileStore is a dependency-free archive backend: one JSON document per
// day under a directory. Writes go through a temp file + rename so a crash
// never leaves a half-written record.
type fileStore struct {
	log logx.Logger

	mu  sync.Mutex
	dir string
}

var dayFileRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

func openFile(cfg Config, log logx.Logger) (Store, error) {
	dir := strings.TrimSpace(cfg.Path)
	if dir == "" {
		return nil, errors.New("storage.path is required for file driver")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileStore{log: log, dir: dir}, nil
}

func (s *fileStore) Close() error { return nil }

func (s *fileStore) dayPath(date string) string {
	return filepath.Join(s.dir, date+".json")
}

func (s *fileStore) SaveDay(ctx context.Context, rec DayRecord) error {
	_ = ctx
	if rec.Date == "" {
		return errors.New("day record has no date")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.dayPath(rec.Date) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.dayPath(rec.Date))
}

func (s *fileStore) LoadDay(ctx context.Context, date string) (DayRecord, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.dayPath(date))
	if errors.Is(err, os.ErrNotExist) {
		return DayRecord{}, false, nil
	}
	if err != nil {
		return DayRecord{}, false, err
	}
	var rec DayRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return DayRecord{}, false, err
	}
	return rec, true, nil
}

func (s *fileStore) Dates(ctx context.Context) ([]string, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !dayFileRe.MatchString(e.Name()) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out, nil
}
