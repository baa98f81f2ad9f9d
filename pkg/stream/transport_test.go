package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newspulse/pkg/domain"
)

// pushServer is a test websocket server speaking the push protocol
type pushServer struct {
	*httptest.Server
	upgrader websocket.Upgrader

	mu       sync.Mutex
	conns    []*websocket.Conn
	received []controlMessage
}

func newPushServer(t *testing.T) *pushServer {
	t.Helper()
	ps := &pushServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(ps.handle))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *pushServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := ps.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ps.mu.Lock()
	ps.conns = append(ps.conns, conn)
	ps.mu.Unlock()

	ps.write(conn, `{"type":"welcome","message":"Connected to real-time feed","timestamp":1}`)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		ps.mu.Lock()
		ps.received = append(ps.received, msg)
		ps.mu.Unlock()
		switch msg.Type {
		case msgPing:
			ps.write(conn, `{"type":"pong","timestamp":2}`)
		case msgSubscribe:
			topics, _ := json.Marshal(msg.Topics)
			ps.write(conn, `{"type":"subscribed","topics":`+string(topics)+`,"timestamp":3}`)
		case msgGetStats:
			ps.write(conn, `{"type":"stats","data":{"connected_clients":1,"uptime":5,"server_version":"test"}}`)
		}
	}
}

func (ps *pushServer) write(conn *websocket.Conn, msg string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	_ = conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

func (ps *pushServer) url() string {
	return "ws" + strings.TrimPrefix(ps.URL, "http")
}

func (ps *pushServer) connCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.conns)
}

func (ps *pushServer) last() *websocket.Conn {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.conns[len(ps.conns)-1]
}

func (ps *pushServer) messages(kind string) []controlMessage {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	var res []controlMessage
	for _, m := range ps.received {
		if m.Type == kind {
			res = append(res, m)
		}
	}
	return res
}

func TestWebsocket_EndToEnd(t *testing.T) {
	ps := newPushServer(t)
	feed := &memFeed{}
	pongs := make(chan struct{}, 4)
	router := NewRouter(RouterParams{Feed: feed, OnPong: func() { pongs <- struct{}{} }})

	cfg := Config{URL: ps.url(), ReconnectDelay: 20 * time.Millisecond, Topics: []string{"politics"}}
	c, _ := startClient(t, cfg, WSDialer{HandshakeTimeout: time.Second}, router)

	waitState(t, c, domain.StateConnected)
	require.Eventually(t, func() bool { return router.Welcome() != "" }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "Connected to real-time feed", router.Welcome())

	require.Eventually(t, func() bool { return len(router.Topics()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"politics"}, router.Topics())

	ps.write(ps.last(), `{"type":"new_article","timestamp":4,"data":{"title":"Budget passed","source":"Hindu","publish_date":"2024-02-01"}}`)
	require.Eventually(t, func() bool { return len(feed.All()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "Budget passed", feed.All()[0].Title)

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))
	select {
	case <-pongs:
	case <-time.After(2 * time.Second):
		t.Fatal("no pong received")
	}

	require.NoError(t, c.RequestStats(ctx))
	require.Eventually(t, func() bool { _, ok := router.Stats(); return ok }, 2*time.Second, 5*time.Millisecond)
	st, _ := router.Stats()
	assert.Equal(t, "test", st.ServerVersion)
}

func TestWebsocket_ReconnectAfterAbruptClose(t *testing.T) {
	ps := newPushServer(t)
	cfg := Config{URL: ps.url(), ReconnectDelay: 20 * time.Millisecond}
	c, _ := startClient(t, cfg, WSDialer{HandshakeTimeout: time.Second}, &recordingHandler{})

	waitState(t, c, domain.StateConnected)
	require.Equal(t, 1, ps.connCount())

	// drop the socket without a close frame
	require.NoError(t, ps.last().UnderlyingConn().Close())

	require.Eventually(t, func() bool { return ps.connCount() == 2 }, 2*time.Second, 5*time.Millisecond)
	waitState(t, c, domain.StateConnected)
	assert.Equal(t, 0, c.Health().Current().Attempts, "attempts reset after successful reconnect")
}

func TestWebsocket_NormalCloseFromServer(t *testing.T) {
	ps := newPushServer(t)
	cfg := Config{URL: ps.url(), ReconnectDelay: 20 * time.Millisecond}
	c, _ := startClient(t, cfg, WSDialer{HandshakeTimeout: time.Second}, &recordingHandler{})

	waitState(t, c, domain.StateConnected)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	require.NoError(t, ps.last().WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)))

	waitState(t, c, domain.StateDisconnected)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, ps.connCount(), "no reconnect after normal close")
	assert.Equal(t, domain.StateDisconnected, c.Health().State())
}

func TestWebsocket_DisconnectSendsNormalClose(t *testing.T) {
	closeCodes := make(chan int, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, _, err = conn.ReadMessage()
		closeCodes <- CloseCode(err)
	}))
	defer srv.Close()

	c, _ := startClient(t, Config{URL: "ws" + strings.TrimPrefix(srv.URL, "http")}, WSDialer{}, &recordingHandler{})
	waitState(t, c, domain.StateConnected)
	require.NoError(t, c.Disconnect(context.Background()))

	select {
	case code := <-closeCodes:
		assert.Equal(t, websocket.CloseNormalClosure, code)
	case <-time.After(2 * time.Second):
		t.Fatal("server didn't see close frame")
	}
	assert.Equal(t, domain.StateDisconnected, c.Health().State())
}

func TestWSDialer_Refused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := WSDialer{HandshakeTimeout: time.Second}.Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestCloseCode(t *testing.T) {
	assert.Equal(t, 1000, CloseCode(&websocket.CloseError{Code: 1000}))
	assert.Equal(t, 1001, CloseCode(&websocket.CloseError{Code: 1001}))
	assert.Equal(t, CloseAbnormal, CloseCode(assert.AnError))
}
