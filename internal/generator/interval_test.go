package generator

import (
	"testing"
	"time"
)

func TestIntervalFor(t *testing.T) {
	cases := []struct {
		span time.Duration
		want Interval
	}{
		{30 * time.Minute, Interval1m},
		{24 * time.Hour, Interval1m},
		{25 * time.Hour, Interval1m}, // still within one whole day
		{48 * time.Hour, Interval1h},
		{7 * 24 * time.Hour, Interval1h},
		{8 * 24 * time.Hour, Interval1d},
		{365 * 24 * time.Hour, Interval1d},
		{366 * 24 * time.Hour, Interval1w},
	}
	for _, c := range cases {
		if got := IntervalFor(c.span); got != c.want {
			t.Fatalf("IntervalFor(%s) = %s, want %s", c.span, got, c.want)
		}
	}
}

func TestIntervalDuration(t *testing.T) {
	if Interval1w.Duration() != 7*24*time.Hour {
		t.Fatalf("unexpected weekly duration: %s", Interval1w.Duration())
	}
	if Interval1m.Duration() != time.Minute {
		t.Fatalf("unexpected minutely duration: %s", Interval1m.Duration())
	}
}
