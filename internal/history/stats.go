package history

import (
	"math"
	"sync"

	"signalgen-go/internal/signal"
)

type signalState struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Last  signal.Sample
}

// Stats tracks running per-signal aggregates over everything observed,
// independent of the store's retention window.
type Stats struct {
	mu     sync.Mutex
	states map[string]signalState
}

// SignalSnapshot exposes a read-only view of a single signal's aggregates.
type SignalSnapshot struct {
	Count int64         `json:"count"`
	Mean  float64       `json:"mean"`
	Min   float64       `json:"min"`
	Max   float64       `json:"max"`
	Last  signal.Sample `json:"last"`
}

// NewStats constructs an empty aggregate tracker.
func NewStats() *Stats {
	return &Stats{states: make(map[string]signalState)}
}

// Observe folds a sample into the running aggregates.
func (s *Stats) Observe(sample signal.Sample) {
	if sample.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[sample.ID]
	if !ok {
		state = signalState{Min: math.Inf(1), Max: math.Inf(-1)}
	}
	state.Count++
	state.Sum += sample.Value
	state.Min = math.Min(state.Min, sample.Value)
	state.Max = math.Max(state.Max, sample.Value)
	state.Last = sample
	s.states[sample.ID] = state
}

// Snapshot returns a copy of the aggregates keyed by signal id.
func (s *Stats) Snapshot() map[string]SignalSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]SignalSnapshot, len(s.states))
	for id, state := range s.states {
		mean := 0.0
		if state.Count > 0 {
			mean = state.Sum / float64(state.Count)
		}
		out[id] = SignalSnapshot{
			Count: state.Count,
			Mean:  mean,
			Min:   state.Min,
			Max:   state.Max,
			Last:  state.Last,
		}
	}
	return out
}
