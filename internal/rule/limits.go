package rule

import (
	"sync"
	"time"
)

// Limits caps how many alerts a single signal may emit per window.
type Limits struct {
	MaxAlertsPerWindow int
	Window             time.Duration

	mu     sync.Mutex
	counts map[string]int
	resets map[string]time.Time
}

// Allow reports whether the signal still has alert budget at ts.
func (l *Limits) Allow(signalID string, ts time.Time) bool {
	if l.MaxAlertsPerWindow <= 0 {
		return true
	}
	window := l.Window
	if window <= 0 {
		window = time.Minute
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts == nil {
		l.counts = make(map[string]int)
		l.resets = make(map[string]time.Time)
	}
	if reset, ok := l.resets[signalID]; !ok || ts.After(reset) {
		l.counts[signalID] = 0
		l.resets[signalID] = ts.Add(window)
	}
	if l.counts[signalID] >= l.MaxAlertsPerWindow {
		return false
	}
	l.counts[signalID]++
	return true
}
