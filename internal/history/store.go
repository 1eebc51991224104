// Package history retains recent samples in memory and on disk for query serving.
package history

import (
	"sort"
	"sync"
	"time"

	"signalgen-go/internal/signal"
)

// Store keeps a bounded per-signal series of recent samples.
type Store struct {
	mu       sync.Mutex
	capacity int
	series   map[string][]signal.Sample
}

// NewStore creates an empty store; capacity bounds each signal's series.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Store{
		capacity: capacity,
		series:   make(map[string][]signal.Sample),
	}
}

// Append records a sample, evicting the oldest entry once past capacity.
func (s *Store) Append(sample signal.Sample) {
	if sample.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	series := append(s.series[sample.ID], sample)
	if len(series) > s.capacity {
		series = series[len(series)-s.capacity:]
	}
	s.series[sample.ID] = series
}

// Range returns the samples for id with start <= Ts < end.
func (s *Store) Range(id string, start, end time.Time) []signal.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []signal.Sample
	for _, sample := range s.series[id] {
		if sample.Ts.Before(start) || !sample.Ts.Before(end) {
			continue
		}
		out = append(out, sample)
	}
	return out
}

// Latest returns the most recent sample for id.
func (s *Store) Latest(id string) (signal.Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	series := s.series[id]
	if len(series) == 0 {
		return signal.Sample{}, false
	}
	return series[len(series)-1], true
}

// Signals lists ids with at least one retained sample, sorted.
func (s *Store) Signals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.series))
	for id, series := range s.series {
		if len(series) > 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Compact replaces samples older than cutoff with one mean sample per step
// bucket, so long-lived series answer range queries with averaged points.
func (s *Store) Compact(cutoff time.Time, step time.Duration) {
	if step <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, series := range s.series {
		s.series[id] = compactSeries(series, cutoff, step)
	}
}

func compactSeries(series []signal.Sample, cutoff time.Time, step time.Duration) []signal.Sample {
	split := sort.Search(len(series), func(i int) bool {
		return !series[i].Ts.Before(cutoff)
	})
	if split == 0 {
		return series
	}

	old, recent := series[:split], series[split:]
	out := make([]signal.Sample, 0, len(series))

	var bucket time.Time
	var sum float64
	var count int
	flush := func() {
		if count == 0 {
			return
		}
		mean := sum / float64(count)
		out = append(out, signal.Sample{
			ID:     old[0].ID,
			Ts:     bucket,
			Value:  mean,
			Status: signal.ClassifyValue(mean),
		})
	}
	for _, sample := range old {
		b := sample.Ts.Truncate(step)
		if count > 0 && !b.Equal(bucket) {
			flush()
			sum, count = 0, 0
		}
		bucket = b
		sum += sample.Value
		count++
	}
	flush()

	return append(out, recent...)
}
