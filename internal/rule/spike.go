package rule

import (
	"fmt"
	"math"
	"sync"
	"time"

	sig "signalgen-go/internal/signal"
)

// Spike alerts when the percent change across a sliding lookback window
// exceeds a threshold.
type Spike struct {
	threshold    float64
	window       time.Duration
	mu           sync.Mutex
	observations map[string]*spikeSeries
}

type spikeSeries struct {
	samples []sig.Sample
}

// NewSpike builds a spike rule using a percent-change threshold (25 means 25%)
// and look-back window seconds.
func NewSpike(threshold float64, windowSecs int) *Spike {
	if threshold <= 0 {
		threshold = 25
	}
	if windowSecs <= 0 {
		windowSecs = 60
	}
	return &Spike{
		threshold:    threshold,
		window:       time.Duration(windowSecs) * time.Second,
		observations: make(map[string]*spikeSeries),
	}
}

// Name returns the configured identifier for logging.
func (r *Spike) Name() string { return "Spike" }

// OnSample compares the newest value against the oldest retained one and
// alerts when the percent move exceeds the threshold. A zero anchor has no
// defined percent change and never alerts.
func (r *Spike) OnSample(s sig.Sample) *sig.Alert {
	if s.ID == "" {
		return nil
	}

	r.mu.Lock()
	series := r.observations[s.ID]
	if series == nil {
		series = &spikeSeries{}
		r.observations[s.ID] = series
	}
	series.append(s, r.window)
	oldest, latest := series.bounds()
	r.mu.Unlock()

	if oldest.Ts.Equal(latest.Ts) {
		return nil
	}
	if oldest.Value == 0 {
		return nil
	}
	change := (latest.Value - oldest.Value) / oldest.Value * 100
	if math.Abs(change) < r.threshold {
		return nil
	}
	reason := fmt.Sprintf("Δ=%.2f%% over %s window", change, r.window)
	return &sig.Alert{Signal: s.ID, Rule: r.Name(), Reason: reason, Value: s.Value, Ts: s.Ts}
}

func (ss *spikeSeries) append(s sig.Sample, window time.Duration) {
	ss.samples = append(ss.samples, s)
	cutoff := s.Ts.Add(-window)
	idx := 0
	for i, existing := range ss.samples {
		if existing.Ts.After(cutoff) {
			idx = i
			break
		}
		idx = i + 1
	}
	if idx > 0 && idx <= len(ss.samples) {
		ss.samples = ss.samples[idx:]
	}
}

func (ss *spikeSeries) bounds() (sig.Sample, sig.Sample) {
	if len(ss.samples) == 0 {
		return sig.Sample{}, sig.Sample{}
	}
	return ss.samples[0], ss.samples[len(ss.samples)-1]
}
