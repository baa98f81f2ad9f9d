package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// close codes
const (
	CloseNormal   = websocket.CloseNormalClosure   // intentional disconnect, never retried
	CloseAbnormal = websocket.CloseAbnormalClosure // connection lost without a close frame
)

const writeTimeout = 10 * time.Second

// Conn is a single push connection
type Conn interface {
	Read() ([]byte, error)
	Write(data []byte) error
	// Close sends a close frame with the code and closes the connection.
	// CloseAbnormal drops the connection without a close frame.
	Close(code int, reason string) error
}

// Dialer opens push connections
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// WSDialer dials websocket endpoints
type WSDialer struct {
	HandshakeTimeout time.Duration
}

// Dial connects to the websocket url
func (d WSDialer) Dial(ctx context.Context, url string) (Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.HandshakeTimeout,
	}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s, status %d: %w", url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &wsConn{conn: conn}, nil
}

// wsConn adapts gorilla connection to Conn. Writes are serialized, reads happen in a single goroutine.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) Read() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *wsConn) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code != CloseAbnormal {
		msg := websocket.FormatCloseMessage(code, reason)
		// peer may be gone already, close the socket anyway
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	}
	return c.conn.Close()
}

// CloseCode extracts the close code from a read error, anything but a close frame counts as abnormal
func CloseCode(err error) int {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CloseAbnormal
}
