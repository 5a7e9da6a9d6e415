package schedule

import "time"

// tieredMovie is a catalog entry annotated with its demand tier for one day.
type tieredMovie struct {
	Movie
	Tier Tier
}

// dateUTC re-anchors a calendar day at UTC midnight so day arithmetic is
// immune to DST transitions in the venue's zone.
func dateUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysSince counts whole calendar days from a to b (negative if b < a).
func daysSince(a, b time.Time) int {
	return int(dateUTC(b).Sub(dateUTC(a)) / (24 * time.Hour))
}

// tierFor maps elapsed weeks (1-based) to a demand tier.
func tierFor(weeksElapsed int) Tier {
	switch {
	case weeksElapsed <= 2:
		return TierLaunch
	case weeksElapsed <= 4:
		return TierMidRun
	default:
		return TierLongTail
	}
}

// activeMovies filters the catalog down to titles running on the given day
// and assigns each its tier. The run window is inclusive on both ends:
// release day through release + weeks*7 days.
//
// Catalog validity (positive runtime, release date set) is enforced by
// ValidateCatalog before generation starts; this function assumes it.
func activeMovies(movies []Movie, day time.Time) []tieredMovie {
	out := make([]tieredMovie, 0, len(movies))
	for _, m := range movies {
		elapsed := daysSince(m.ReleaseDate, day)
		if elapsed < 0 || elapsed > m.Weeks*7 {
			continue
		}
		out = append(out, tieredMovie{Movie: m, Tier: tierFor(elapsed/7 + 1)})
	}
	return out
}

// ValidateCatalog rejects malformed catalog entries up front. Scheduling
// fails closed: a movie with missing metadata is a config error, not a skip.
func ValidateCatalog(movies []Movie) error {
	seen := make(map[string]struct{}, len(movies))
	for i, m := range movies {
		if m.Title == "" {
			return badConfig("movie %d has no title", i)
		}
		if _, dup := seen[m.Title]; dup {
			return badConfig("duplicate movie title %q", m.Title)
		}
		seen[m.Title] = struct{}{}
		if m.Runtime <= 0 {
			return badConfig("movie %q has non-positive runtime", m.Title)
		}
		if m.ReleaseDate.IsZero() {
			return badConfig("movie %q has no release date", m.Title)
		}
		if m.Weeks <= 0 {
			return badConfig("movie %q has non-positive run weeks", m.Title)
		}
	}
	return nil
}
