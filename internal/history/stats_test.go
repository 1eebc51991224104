package history

import (
	"testing"
	"time"

	"signalgen-go/internal/signal"
)

func TestStatsObserve(t *testing.T) {
	stats := NewStats()
	now := time.Now()
	stats.Observe(signal.Sample{ID: "temperature", Ts: now, Value: 10, Status: signal.StatusNormal})
	stats.Observe(signal.Sample{ID: "temperature", Ts: now.Add(time.Second), Value: 30, Status: signal.StatusNormal})

	snap := stats.Snapshot()
	agg, ok := snap["temperature"]
	if !ok {
		t.Fatalf("expected aggregates for temperature")
	}
	if agg.Count != 2 {
		t.Fatalf("expected count 2, got %d", agg.Count)
	}
	if agg.Mean != 20 {
		t.Fatalf("expected mean 20, got %.2f", agg.Mean)
	}
	if agg.Min != 10 || agg.Max != 30 {
		t.Fatalf("unexpected min/max: %.2f/%.2f", agg.Min, agg.Max)
	}
	if agg.Last.Value != 30 {
		t.Fatalf("expected last value 30, got %.2f", agg.Last.Value)
	}
}

func TestStatsIgnoresEmptyID(t *testing.T) {
	stats := NewStats()
	stats.Observe(signal.Sample{Value: 5})
	if len(stats.Snapshot()) != 0 {
		t.Fatalf("expected empty snapshot")
	}
}
