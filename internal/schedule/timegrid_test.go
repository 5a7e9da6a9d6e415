package schedule

import (
	"testing"
	"time"
)

func at(h, m, s int) time.Time {
	return time.Date(2024, 12, 25, h, m, s, 0, time.UTC)
}

func TestRoundUpToGrid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "already aligned", in: at(10, 0, 0), want: at(10, 0, 0)},
		{name: "mid grid", in: at(10, 2, 0), want: at(10, 5, 0)},
		{name: "one minute short", in: at(10, 4, 0), want: at(10, 5, 0)},
		{name: "seconds push past aligned minute", in: at(10, 0, 30), want: at(10, 5, 0)},
		{name: "seconds on unaligned minute", in: at(10, 3, 1), want: at(10, 5, 0)},
		{name: "hour rollover", in: at(10, 58, 0), want: at(11, 0, 0)},
		{name: "day rollover", in: at(23, 57, 0), want: time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := RoundUpToGrid(tt.in)
			if !got.Equal(tt.want) {
				t.Fatalf("RoundUpToGrid(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundUpToGridIsIdempotentOnAligned(t *testing.T) {
	t.Parallel()
	v := RoundUpToGrid(at(13, 37, 12))
	if !RoundUpToGrid(v).Equal(v) {
		t.Fatalf("rounding an aligned instant moved it: %v -> %v", v, RoundUpToGrid(v))
	}
	if v.Minute()%5 != 0 || v.Second() != 0 {
		t.Fatalf("result not grid aligned: %v", v)
	}
}
