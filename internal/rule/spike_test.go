package rule

import (
	"strings"
	"testing"
	"time"

	sig "signalgen-go/internal/signal"
)

func TestSpikeUpwardMove(t *testing.T) {
	r := NewSpike(20, 120)
	now := time.Now()
	samples := []sig.Sample{
		sampleWith("temperature", 10, now.Add(-90*time.Second)),
		sampleWith("temperature", 18, now.Add(-60*time.Second)),
		sampleWith("temperature", 45, now),
	}

	var alert *sig.Alert
	for _, s := range samples {
		alert = r.OnSample(s)
	}
	if alert == nil {
		t.Fatalf("expected spike alert")
	}
	if alert.Value != 45 {
		t.Fatalf("expected alert to carry latest value, got %.2f", alert.Value)
	}
}

func TestSpikeDownwardMove(t *testing.T) {
	r := NewSpike(20, 120)
	now := time.Now()
	samples := []sig.Sample{
		sampleWith("pressure", 80, now.Add(-60*time.Second)),
		sampleWith("pressure", 50, now),
	}

	var alert *sig.Alert
	for _, s := range samples {
		alert = r.OnSample(s)
	}
	if alert == nil {
		t.Fatalf("expected spike alert on drop")
	}
}

func TestSpikePercentChange(t *testing.T) {
	// 50 -> 60 is a 20% move; a 15% threshold must fire on it.
	r := NewSpike(15, 120)
	now := time.Now()
	r.OnSample(sampleWith("t", 50, now.Add(-30*time.Second)))
	alert := r.OnSample(sampleWith("t", 60, now))
	if alert == nil {
		t.Fatalf("expected 20%% move to clear a 15%% threshold")
	}
	if !strings.Contains(alert.Reason, "%") {
		t.Fatalf("expected percent reason, got %s", alert.Reason)
	}
}

func TestSpikeBelowThresholdStaysQuiet(t *testing.T) {
	r := NewSpike(20, 120)
	now := time.Now()
	r.OnSample(sampleWith("t", 50, now.Add(-30*time.Second)))
	// 50 -> 55 is only a 10% move.
	if alert := r.OnSample(sampleWith("t", 55, now)); alert != nil {
		t.Fatalf("move below threshold should not alert")
	}
}

func TestSpikeZeroAnchorStaysQuiet(t *testing.T) {
	r := NewSpike(20, 120)
	now := time.Now()
	r.OnSample(sampleWith("t", 0, now.Add(-30*time.Second)))
	if alert := r.OnSample(sampleWith("t", 50, now)); alert != nil {
		t.Fatalf("zero anchor has no percent change, should not alert")
	}
}

func TestSpikeEvictsOldSamples(t *testing.T) {
	r := NewSpike(20, 60)
	now := time.Now()
	r.OnSample(sampleWith("t", 10, now.Add(-5*time.Minute)))
	// The 5-minute-old anchor falls outside the window, so no spike.
	if alert := r.OnSample(sampleWith("t", 50, now)); alert != nil {
		t.Fatalf("expected old anchor to be evicted before comparison")
	}
}

func TestBuildFallsBackToThreshold(t *testing.T) {
	if got := Build("unknown", Params{}); got.Name() != "Threshold" {
		t.Fatalf("expected Threshold fallback, got %s", got.Name())
	}
	if got := Build("spike", Params{SpikeThreshold: 5}); got.Name() != "Spike" {
		t.Fatalf("expected Spike, got %s", got.Name())
	}
}
