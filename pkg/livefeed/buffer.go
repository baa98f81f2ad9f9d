// Package livefeed keeps the most recent push-delivered articles and reconciles them with polled results.
package livefeed

import (
	"sync"

	"github.com/umputun/newspulse/pkg/domain"
)

// DefaultCapacity is the number of live articles kept when no capacity is configured
const DefaultCapacity = 100

// Buffer is a bounded newest-first sequence of live articles.
// Storage is a ring, so Push is O(1) and the oldest entry is overwritten once the buffer is full.
// Snapshot returns a copy; readers never observe a buffer in the middle of a push.
type Buffer struct {
	mu      sync.RWMutex
	ring    []domain.Article
	next    int // slot for the next push
	size    int
	version uint64
	updates chan struct{}
}

// NewBuffer makes a buffer with the given capacity, non-positive capacity means DefaultCapacity
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		ring:    make([]domain.Article, capacity),
		updates: make(chan struct{}, 1),
	}
}

// Push prepends the article, evicting the oldest one if the buffer is full.
// No deduplication happens here.
func (b *Buffer) Push(a domain.Article) {
	b.mu.Lock()
	b.ring[b.next] = a
	b.next = (b.next + 1) % len(b.ring)
	if b.size < len(b.ring) {
		b.size++
	}
	b.version++
	b.mu.Unlock()

	// coalesce notifications, a single pending signal is enough for the reader to take a fresh snapshot
	select {
	case b.updates <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the buffer, newest first
func (b *Buffer) Snapshot() []domain.Article {
	b.mu.RLock()
	defer b.mu.RUnlock()

	res := make([]domain.Article, 0, b.size)
	for i := 1; i <= b.size; i++ {
		idx := (b.next - i + len(b.ring)) % len(b.ring)
		res = append(res, b.ring[idx])
	}
	return res
}

// Len returns the number of buffered articles
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Cap returns the buffer capacity
func (b *Buffer) Cap() int {
	return len(b.ring)
}

// Version is incremented on every push
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Updates signals after pushes. Signals are coalesced.
func (b *Buffer) Updates() <-chan struct{} {
	return b.updates
}
