package stream

import (
	"context"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/umputun/newspulse/pkg/domain"
)

// fakeConn is an in-memory Conn
type fakeConn struct {
	frames chan []byte
	fail   chan error
	closed chan struct{}

	once      sync.Once
	mu        sync.Mutex
	writes    [][]byte
	closeCode int
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		frames: make(chan []byte, 16),
		fail:   make(chan error, 1),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) Read() ([]byte, error) {
	select {
	case data := <-c.frames:
		return data, nil
	case err := <-c.fail:
		return nil, err
	case <-c.closed:
		return nil, errors.New("use of closed network connection")
	}
}

func (c *fakeConn) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.closed:
		return errors.New("write to closed connection")
	default:
	}
	c.writes = append(c.writes, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Close(code int, _ string) error {
	c.once.Do(func() {
		c.mu.Lock()
		c.closeCode = code
		c.mu.Unlock()
		close(c.closed)
	})
	return nil
}

// closeWith simulates the peer closing the connection with the code
func (c *fakeConn) closeWith(code int) {
	c.fail <- &websocket.CloseError{Code: code}
}

func (c *fakeConn) written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]string, 0, len(c.writes))
	for _, w := range c.writes {
		res = append(res, string(w))
	}
	return res
}

func (c *fakeConn) code() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCode
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// fakeDialer calls fn with the 1-based attempt number
type fakeDialer struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, call int) (Conn, error)
}

func (d *fakeDialer) Dial(ctx context.Context, _ string) (Conn, error) {
	d.mu.Lock()
	d.calls++
	call := d.calls
	d.mu.Unlock()
	return d.fn(ctx, call)
}

func (d *fakeDialer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// connDialer returns prepared connections in order and fails once they run out
func connDialer(conns ...*fakeConn) *fakeDialer {
	return &fakeDialer{fn: func(_ context.Context, call int) (Conn, error) {
		if call <= len(conns) {
			return conns[call-1], nil
		}
		return nil, errors.New("connection refused")
	}}
}

// recordingHandler keeps all frames
type recordingHandler struct {
	mu     sync.Mutex
	frames []string
}

func (h *recordingHandler) Handle(raw []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = append(h.frames, string(raw))
}

func (h *recordingHandler) Frames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.frames...)
}

// memFeed is a FeedWriter keeping pushed articles
type memFeed struct {
	mu       sync.Mutex
	articles []domain.Article
}

func (f *memFeed) Push(a domain.Article) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.articles = append(f.articles, a)
}

func (f *memFeed) All() []domain.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Article(nil), f.articles...)
}
