package main

import (
	"time"

	"github.com/umputun/newspulse/pkg/domain"
	"github.com/umputun/newspulse/pkg/livefeed"
	"github.com/umputun/newspulse/pkg/stream"
)

// connectionStatus collects push connection details for the status endpoint
type connectionStatus struct {
	health    *stream.Health
	router    *stream.Router
	keepalive *stream.Keepalive
	feed      *livefeed.Buffer
}

// Health returns the current connection state
func (s *connectionStatus) Health() domain.ConnectionHealth {
	return s.health.Current()
}

// ServerStats returns the last stats frame, false if none received
func (s *connectionStatus) ServerStats() (domain.ConnectionStats, bool) {
	return s.router.Stats()
}

// Topics returns topics confirmed by the server
func (s *connectionStatus) Topics() []string {
	return s.router.Topics()
}

// Counters returns inbound frame counters
func (s *connectionStatus) Counters() stream.RouterCounters {
	return s.router.Counters()
}

// Welcome returns the greeting of the current connection
func (s *connectionStatus) Welcome() string {
	return s.router.Welcome()
}

// LastPong returns the time of the last pong frame
func (s *connectionStatus) LastPong() time.Time {
	return s.router.LastPong()
}

// Buffered returns the number of articles in the live feed
func (s *connectionStatus) Buffered() int {
	return s.feed.Len()
}

// LastFrame returns the time of the last inbound frame
func (s *connectionStatus) LastFrame() time.Time {
	return s.router.LastFrame()
}

// Pings returns the number of pings sent and pongs missed
func (s *connectionStatus) Pings() (sent, missed uint64) {
	return s.keepalive.Sent(), s.keepalive.Missed()
}
