package stream

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newspulse/pkg/domain"
)

// DefaultPingInterval is the keepalive period
const DefaultPingInterval = 30 * time.Second

// Pinger sends probes and drops dead connections
type Pinger interface {
	Ping(ctx context.Context) error
	Drop(ctx context.Context, reason string) error
}

// KeepaliveParams defines keepalive dependencies and timing
type KeepaliveParams struct {
	Pinger      Pinger
	Health      *Health
	Interval    time.Duration
	PongTimeout time.Duration // zero disables dead-peer detection
}

// Keepalive pings the connection on a fixed interval while it is connected.
// It ticks regardless of inbound traffic. With PongTimeout set, a ping left without
// a pong for that long drops the connection, which hands it over to the reconnect logic.
type Keepalive struct {
	pinger      Pinger
	health      *Health
	interval    time.Duration
	pongTimeout time.Duration

	pongs  chan struct{}
	sent   atomic.Uint64
	missed atomic.Uint64
}

// NewKeepalive makes a keepalive driver
func NewKeepalive(p KeepaliveParams) *Keepalive {
	if p.Interval <= 0 {
		p.Interval = DefaultPingInterval
	}
	return &Keepalive{
		pinger:      p.Pinger,
		health:      p.Health,
		interval:    p.Interval,
		pongTimeout: p.PongTimeout,
		pongs:       make(chan struct{}, 1),
	}
}

// Pong reports a received pong, safe to call from any goroutine
func (k *Keepalive) Pong() {
	select {
	case k.pongs <- struct{}{}:
	default:
	}
}

// Sent returns the number of pings written
func (k *Keepalive) Sent() uint64 {
	return k.sent.Load()
}

// Missed returns the number of pings left without a pong
func (k *Keepalive) Missed() uint64 {
	return k.missed.Load()
}

// Run drives pings until ctx is canceled
func (k *Keepalive) Run(ctx context.Context) {
	updates, unsubscribe := k.health.Subscribe()
	defer unsubscribe()

	var ticker *time.Ticker
	var tick <-chan time.Time
	var pongTimer *time.Timer
	var pongDeadline <-chan time.Time

	stopPongTimer := func() {
		if pongTimer != nil {
			pongTimer.Stop()
			pongTimer, pongDeadline = nil, nil
		}
	}
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
		stopPongTimer()
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return

		case h, ok := <-updates:
			if !ok {
				return
			}
			if h.State == domain.StateConnected && ticker != nil {
				// unchanged values are not published, so this is a new connection and the states in between were skipped
				stop()
				lgr.Printf("[DEBUG] keepalive restarted for a new connection")
			}
			if h.State == domain.StateConnected && ticker == nil {
				ticker = time.NewTicker(k.interval)
				tick = ticker.C
				// a pong from the previous connection means nothing for this one
				select {
				case <-k.pongs:
				default:
				}
				lgr.Printf("[DEBUG] keepalive started, interval %v", k.interval)
			}
			if h.State != domain.StateConnected && ticker != nil {
				stop()
				lgr.Printf("[DEBUG] keepalive stopped, stream is %s", h.State)
			}

		case <-tick:
			// the subscription keeps only the latest value, check the state right before pinging
			if k.health.State() != domain.StateConnected {
				stop()
				continue
			}
			if err := k.pinger.Ping(ctx); err != nil {
				lgr.Printf("[WARN] keepalive ping failed: %v", err)
				continue
			}
			k.sent.Add(1)
			if k.pongTimeout > 0 && pongTimer == nil {
				pongTimer = time.NewTimer(k.pongTimeout)
				pongDeadline = pongTimer.C
			}

		case <-k.pongs:
			stopPongTimer()

		case <-pongDeadline:
			pongTimer, pongDeadline = nil, nil
			k.missed.Add(1)
			reason := fmt.Sprintf("no pong within %v", k.pongTimeout)
			if err := k.pinger.Drop(ctx, reason); err != nil {
				lgr.Printf("[WARN] keepalive can't drop connection: %v", err)
			}
		}
	}
}
