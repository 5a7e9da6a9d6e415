package schedule

import (
	"testing"
	"time"
)

func TestCandidateSlotsScenario(t *testing.T) {
	t.Parallel()
	// runtime 120min, doors 10:00-23:00: first slot 10:05, then every
	// runtime+turnover rounded up, last start leaving 125min before close.
	open := at(10, 0, 0)
	close := at(23, 0, 0)
	runtime := 120 * time.Minute

	slots := candidateSlots(runtime, open, close)
	if len(slots) == 0 {
		t.Fatal("expected slots, got none")
	}
	if !slots[0].Equal(at(10, 5, 0)) {
		t.Fatalf("first slot = %v, want 10:05", slots[0].Format("15:04"))
	}
	if !slots[1].Equal(at(12, 10, 0)) {
		t.Fatalf("second slot = %v, want 12:10", slots[1].Format("15:04"))
	}
	for i, s := range slots {
		if s.Minute()%5 != 0 || s.Second() != 0 {
			t.Fatalf("slot %d not grid aligned: %v", i, s)
		}
		if s.Before(open.Add(Turnover)) {
			t.Fatalf("slot %d starts before open+turnover: %v", i, s)
		}
		if s.Add(runtime + Turnover).After(close) {
			t.Fatalf("slot %d overruns close: %v", i, s)
		}
	}
	last := slots[len(slots)-1]
	if last.After(at(20, 55, 0)) {
		t.Fatalf("last slot %v, want <= 20:55", last.Format("15:04"))
	}
}

func TestCandidateSlotsSpacing(t *testing.T) {
	t.Parallel()
	runtime := 95 * time.Minute
	slots := candidateSlots(runtime, at(9, 0, 0), at(23, 0, 0))
	for i := 1; i < len(slots); i++ {
		gap := slots[i].Sub(slots[i-1].Add(runtime))
		if gap < Turnover {
			t.Fatalf("slots %d/%d leave %v turnover, want >= %v", i-1, i, gap, Turnover)
		}
	}
}

func TestCandidateSlotsDeterministic(t *testing.T) {
	t.Parallel()
	a := candidateSlots(110*time.Minute, at(10, 0, 0), at(22, 30, 0))
	b := candidateSlots(110*time.Minute, at(10, 0, 0), at(22, 30, 0))
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("slot %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCandidateSlotsTightWindow(t *testing.T) {
	t.Parallel()
	// 120+5 doesn't fit into a 2h window once the opening turnover is paid.
	if got := candidateSlots(120*time.Minute, at(10, 0, 0), at(12, 0, 0)); len(got) != 0 {
		t.Fatalf("expected no slots, got %d", len(got))
	}
	// Exactly one fit: 10:05 + 120 + 5 == 12:10.
	if got := candidateSlots(120*time.Minute, at(10, 0, 0), at(12, 10, 0)); len(got) != 1 {
		t.Fatalf("expected exactly one slot, got %d", len(got))
	}
}
