package stream

import (
	"sync"

	"github.com/umputun/newspulse/pkg/domain"
)

// Health is the observable connection health. Only the Client in this package writes it,
// any number of readers can poll it or subscribe to changes.
type Health struct {
	mu     sync.RWMutex
	cur    domain.ConnectionHealth
	subs   map[int]chan domain.ConnectionHealth
	nextID int
}

// NewHealth makes health in disconnected state
func NewHealth() *Health {
	return &Health{subs: make(map[int]chan domain.ConnectionHealth)}
}

// Current returns the latest health snapshot
func (h *Health) Current() domain.ConnectionHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}

// State returns the current connection state
func (h *Health) State() domain.ConnectionState {
	return h.Current().State
}

// Connected is the single flag consumed by the UI
func (h *Health) Connected() bool {
	return h.State() == domain.StateConnected
}

// Subscribe returns a channel receiving health changes, starting with the current value.
// Delivery keeps only the latest value, a slow subscriber skips intermediate states but never blocks the writer.
// The returned func unsubscribes and closes the channel.
func (h *Health) Subscribe() (updates <-chan domain.ConnectionHealth, unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan domain.ConnectionHealth, 1)
	ch <- h.cur
	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

// set publishes a new health value
func (h *Health) set(v domain.ConnectionHealth) {
	v.Connected = v.State == domain.StateConnected

	h.mu.Lock()
	defer h.mu.Unlock()
	if v == h.cur {
		return
	}
	h.cur = v
	for _, ch := range h.subs {
		// drop the stale pending value, if any, and put the latest one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
