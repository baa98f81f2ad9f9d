// Package stream implements the client side of the real-time article push connection.
//
// Client owns the connection lifecycle. All state transitions happen in a single run loop driven by
// events: commands from callers (connect, disconnect, send, drop), dial results, connection closures
// and reconnect timer expirations. Dials and reads run in their own goroutines and only talk to the
// loop through events, so there is never more than one live connection and one pending reconnect timer.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newspulse/pkg/domain"
)

// defaults for Config
const (
	DefaultReconnectDelay       = 3 * time.Second
	DefaultMaxReconnectAttempts = 5
	DefaultDialTimeout          = 10 * time.Second
)

var (
	// ErrNotConnected returned when sending while the connection is not established
	ErrNotConnected = errors.New("stream is not connected")
	// ErrClientClosed returned when the run loop has finished
	ErrClientClosed = errors.New("stream client is closed")
)

// FrameHandler consumes raw inbound frames
type FrameHandler interface {
	Handle(raw []byte)
}

// Config defines connection and reconnection parameters
type Config struct {
	URL                  string
	ReconnectDelay       time.Duration // constant delay between reconnect attempts
	MaxReconnectAttempts int           // reconnect attempts after an abnormal closure before giving up
	DialTimeout          time.Duration
	Topics               []string // subscribed after every successful connect
}

// Client is the connection manager of the push stream
type Client struct {
	url         string
	delay       time.Duration
	maxAttempts int
	dialTimeout time.Duration
	topics      []string

	dialer  Dialer
	handler FrameHandler
	health  *Health

	events  chan event
	done    chan struct{}
	running atomic.Bool
	wg      sync.WaitGroup // dialers and readers

	// owned by the run loop
	ctx      context.Context
	state    domain.ConnectionState
	conn     Conn
	attempts int
	gen      uint64 // bumped on every dial and disconnect, invalidates late dial results and timers
	timer    *time.Timer
	lastErr  string
}

// event is the input of the run loop
type event interface{ streamEvent() }

type connectRequested struct{ done chan struct{} }
type disconnectRequested struct{ done chan struct{} }
type dropRequested struct {
	reason string
	done   chan struct{}
}
type sendRequested struct {
	data []byte
	resp chan error
}
type dialSucceeded struct {
	gen  uint64
	conn Conn
}
type dialFailed struct {
	gen uint64
	err error
}
type connClosed struct {
	conn Conn
	code int
	err  error
}
type timerFired struct{ gen uint64 }

func (connectRequested) streamEvent()    {}
func (disconnectRequested) streamEvent() {}
func (dropRequested) streamEvent()       {}
func (sendRequested) streamEvent()       {}
func (dialSucceeded) streamEvent()       {}
func (dialFailed) streamEvent()          {}
func (connClosed) streamEvent()          {}
func (timerFired) streamEvent()          {}

// NewClient makes a client, zero config values are replaced by defaults
func NewClient(cfg Config, dialer Dialer, handler FrameHandler) *Client {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	return &Client{
		url:         cfg.URL,
		delay:       cfg.ReconnectDelay,
		maxAttempts: cfg.MaxReconnectAttempts,
		dialTimeout: cfg.DialTimeout,
		topics:      cfg.Topics,
		dialer:      dialer,
		handler:     handler,
		health:      NewHealth(),
		events:      make(chan event, 16),
		done:        make(chan struct{}),
	}
}

// Health returns the observable connection health
func (c *Client) Health() *Health {
	return c.health
}

// Run connects and processes events until ctx is canceled.
// On exit the pending reconnect timer is stopped and the connection is closed with the normal code.
func (c *Client) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errors.New("stream client already running")
	}
	c.ctx = ctx
	lgr.Printf("[INFO] stream client started for %s", c.url)

	c.handleConnect()
	for {
		select {
		case <-ctx.Done():
			c.handleDisconnect("client shutting down")
			close(c.done)
			c.wg.Wait()
			c.drain()
			lgr.Printf("[INFO] stream client stopped")
			return nil
		case ev := <-c.events:
			c.dispatch(ev)
		}
	}
}

// Connect starts a connection unless one is already established or in progress.
// This is the way out of the failed state.
func (c *Client) Connect(ctx context.Context) error {
	done := make(chan struct{})
	return c.request(ctx, connectRequested{done: done}, done)
}

// Disconnect cancels a pending reconnect and closes the connection with the normal code
func (c *Client) Disconnect(ctx context.Context) error {
	done := make(chan struct{})
	return c.request(ctx, disconnectRequested{done: done}, done)
}

// Drop closes the connection as lost, which starts the reconnect sequence
func (c *Client) Drop(ctx context.Context, reason string) error {
	done := make(chan struct{})
	return c.request(ctx, dropRequested{reason: reason, done: done}, done)
}

// Send encodes msg to JSON and writes it to the connection
func (c *Client) Send(ctx context.Context, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	resp := make(chan error, 1)
	if err := c.post(ctx, sendRequested{data: data, resp: resp}); err != nil {
		return err
	}
	select {
	case err := <-resp:
		return err
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe asks the server for the given topics
func (c *Client) Subscribe(ctx context.Context, topics []string) error {
	return c.Send(ctx, controlMessage{Type: msgSubscribe, Topics: topics})
}

// RequestStats asks the server for a stats frame
func (c *Client) RequestStats(ctx context.Context) error {
	return c.Send(ctx, controlMessage{Type: msgGetStats})
}

// Ping sends a liveness probe
func (c *Client) Ping(ctx context.Context) error {
	return c.Send(ctx, controlMessage{Type: msgPing})
}

func (c *Client) request(ctx context.Context, ev event, done chan struct{}) error {
	if err := c.post(ctx, ev); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) post(ctx context.Context, ev event) error {
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// postAsync is used by internal goroutines, returns false if the loop is gone
func (c *Client) postAsync(ev event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

// drain closes connections delivered after the loop stopped, called once all internal goroutines are done
func (c *Client) drain() {
	for {
		select {
		case ev := <-c.events:
			if ds, ok := ev.(dialSucceeded); ok {
				_ = ds.conn.Close(CloseNormal, "client closed")
			}
		default:
			return
		}
	}
}

func (c *Client) dispatch(ev event) {
	switch ev := ev.(type) {
	case connectRequested:
		c.handleConnect()
		close(ev.done)
	case disconnectRequested:
		c.handleDisconnect("client disconnecting")
		close(ev.done)
	case dropRequested:
		c.handleDrop(ev.reason)
		close(ev.done)
	case sendRequested:
		ev.resp <- c.write(ev.data)
	case dialSucceeded:
		c.handleDialSucceeded(ev)
	case dialFailed:
		c.handleDialFailed(ev)
	case connClosed:
		c.handleClosed(ev)
	case timerFired:
		if ev.gen != c.gen || c.state != domain.StateReconnecting {
			return // superseded by connect or disconnect
		}
		c.timer = nil
		c.dial(domain.StateReconnecting)
	}
}

func (c *Client) handleConnect() {
	switch c.state {
	case domain.StateConnecting, domain.StateConnected:
		lgr.Printf("[DEBUG] connect ignored, stream is %s", c.state)
		return
	case domain.StateDisconnected, domain.StateFailed:
		// a connect from outside starts a fresh retry budget
		c.attempts = 0
		c.lastErr = ""
	}
	c.stopTimer()
	c.dial(domain.StateConnecting)
}

// dial starts a connection attempt, the state stays Reconnecting for retries
func (c *Client) dial(state domain.ConnectionState) {
	c.gen++
	gen := c.gen
	c.setState(state)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(c.ctx, c.dialTimeout)
		defer cancel()

		conn, err := c.dialer.Dial(ctx, c.url)
		if err != nil {
			c.postAsync(dialFailed{gen: gen, err: err})
			return
		}
		if !c.postAsync(dialSucceeded{gen: gen, conn: conn}) {
			_ = conn.Close(CloseNormal, "client closed")
		}
	}()
}

func (c *Client) handleDialSucceeded(ev dialSucceeded) {
	if ev.gen != c.gen || (c.state != domain.StateConnecting && c.state != domain.StateReconnecting) {
		_ = ev.conn.Close(CloseNormal, "stale connection")
		return
	}

	c.conn = ev.conn
	c.attempts = 0
	c.lastErr = ""
	c.setState(domain.StateConnected)
	lgr.Printf("[INFO] stream connected to %s", c.url)

	c.wg.Add(1)
	go c.read(ev.conn)

	if len(c.topics) > 0 {
		data, err := json.Marshal(controlMessage{Type: msgSubscribe, Topics: c.topics})
		if err == nil {
			err = c.write(data)
		}
		if err != nil {
			lgr.Printf("[WARN] failed to subscribe to %v: %v", c.topics, err)
		}
	}
}

func (c *Client) handleDialFailed(ev dialFailed) {
	if ev.gen != c.gen {
		return
	}
	lgr.Printf("[WARN] stream dial failed: %v", ev.err)
	c.lastErr = ev.err.Error()
	c.handleClosure(CloseAbnormal)
}

func (c *Client) handleClosed(ev connClosed) {
	if c.conn == nil || ev.conn != c.conn {
		return // connection replaced or closed by us
	}
	c.conn = nil
	if ev.code != CloseNormal {
		c.lastErr = fmt.Sprintf("connection closed with code %d", ev.code)
		if ev.err != nil {
			c.lastErr = fmt.Sprintf("connection closed with code %d: %v", ev.code, ev.err)
		}
	}
	lgr.Printf("[INFO] stream disconnected, code %d", ev.code)
	c.handleClosure(ev.code)
}

func (c *Client) handleDrop(reason string) {
	if c.state != domain.StateConnected || c.conn == nil {
		return
	}
	lgr.Printf("[WARN] dropping stream connection: %s", reason)
	if err := c.conn.Close(CloseAbnormal, reason); err != nil {
		lgr.Printf("[DEBUG] close dropped connection: %v", err)
	}
	c.conn = nil
	c.lastErr = reason
	c.handleClosure(CloseAbnormal)
}

// handleClosure decides between giving up, retrying and failing after the connection is gone
func (c *Client) handleClosure(code int) {
	if code == CloseNormal {
		c.setState(domain.StateDisconnected)
		return
	}

	if c.attempts < c.maxAttempts {
		c.attempts++
		lgr.Printf("[INFO] reconnecting to %s in %v (%d/%d)", c.url, c.delay, c.attempts, c.maxAttempts)
		c.setState(domain.StateReconnecting)
		c.scheduleReconnect()
		return
	}

	c.lastErr = "failed to reconnect after maximum attempts"
	lgr.Printf("[ERROR] stream %s: %s (%d)", c.url, c.lastErr, c.maxAttempts)
	c.setState(domain.StateFailed)
}

func (c *Client) handleDisconnect(reason string) {
	c.stopTimer()
	c.gen++
	if c.conn != nil {
		if err := c.conn.Close(CloseNormal, reason); err != nil {
			lgr.Printf("[DEBUG] close stream connection: %v", err)
		}
		c.conn = nil
	}
	if c.state == domain.StateDisconnected {
		return
	}
	c.attempts = 0
	c.lastErr = ""
	c.setState(domain.StateDisconnected)
	lgr.Printf("[INFO] stream disconnected: %s", reason)
}

func (c *Client) scheduleReconnect() {
	c.stopTimer()
	gen := c.gen
	c.timer = time.AfterFunc(c.delay, func() { c.postAsync(timerFired{gen: gen}) })
}

func (c *Client) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Client) read(conn Conn) {
	defer c.wg.Done()
	for {
		data, err := conn.Read()
		if err != nil {
			c.postAsync(connClosed{conn: conn, code: CloseCode(err), err: err})
			return
		}
		c.handler.Handle(data)
	}
}

func (c *Client) write(data []byte) error {
	if c.state != domain.StateConnected || c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (c *Client) setState(s domain.ConnectionState) {
	c.state = s
	c.health.set(domain.ConnectionHealth{State: s, Attempts: c.attempts, LastError: c.lastErr})
}
