package rule

import (
	"fmt"
	"sync"

	sig "signalgen-go/internal/signal"
)

// Threshold alerts on every critical sample and on sustained high readings.
type Threshold struct {
	highStreak int
	mu         sync.Mutex
	streaks    map[string]int
}

// NewThreshold builds a threshold rule; highStreak is the number of
// consecutive high samples needed before a high alert fires.
func NewThreshold(highStreak int) *Threshold {
	if highStreak <= 0 {
		highStreak = 3
	}
	return &Threshold{
		highStreak: highStreak,
		streaks:    make(map[string]int),
	}
}

// Name returns the identifier for the rule implementation.
func (r *Threshold) Name() string { return "Threshold" }

// OnSample fires immediately on critical status; a run of high samples
// must reach the configured streak first. Normal samples reset the run.
func (r *Threshold) OnSample(s sig.Sample) *sig.Alert {
	if s.ID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch s.Status {
	case sig.StatusCritical:
		r.streaks[s.ID] = 0
		return &sig.Alert{
			Signal: s.ID,
			Rule:   r.Name(),
			Reason: fmt.Sprintf("value %.2f above critical threshold %.0f", s.Value, sig.CriticalThreshold),
			Value:  s.Value,
			Ts:     s.Ts,
		}
	case sig.StatusHigh:
		r.streaks[s.ID]++
		if r.streaks[s.ID] < r.highStreak {
			return nil
		}
		r.streaks[s.ID] = 0
		return &sig.Alert{
			Signal: s.ID,
			Rule:   r.Name(),
			Reason: fmt.Sprintf("%d consecutive samples above %.0f", r.highStreak, sig.HighThreshold),
			Value:  s.Value,
			Ts:     s.Ts,
		}
	default:
		r.streaks[s.ID] = 0
		return nil
	}
}
