package server

import (
	"sync"

	"github.com/google/uuid"

	"signalgen-go/internal/signal"
)

// Hub fans live samples out to websocket subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan signal.Sample
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan signal.Sample)}
}

// Subscribe registers a buffered subscriber channel and returns its id.
func (h *Hub) Subscribe(buffer int) (string, <-chan signal.Sample) {
	if buffer <= 0 {
		buffer = 64
	}
	id := uuid.NewString()
	ch := make(chan signal.Sample, buffer)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Publish delivers a sample to every subscriber; slow subscribers drop
// samples rather than stalling the pipeline.
func (h *Hub) Publish(sample signal.Sample) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- sample:
		default:
		}
	}
}

// Subscribers reports the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
