package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newspulse/pkg/domain"
)

// startClient runs the client in background, the returned func stops it and waits for Run to exit
func startClient(t *testing.T, cfg Config, d Dialer, h FrameHandler) (*Client, func()) {
	t.Helper()
	if h == nil {
		h = &recordingHandler{}
	}
	c := NewClient(cfg, d, h)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			select {
			case err := <-errCh:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Error("client did not stop")
			}
		})
	}
	t.Cleanup(stop)
	return c, stop
}

func waitState(t *testing.T, c *Client, state domain.ConnectionState) {
	t.Helper()
	require.Eventually(t, func() bool { return c.Health().State() == state },
		2*time.Second, 2*time.Millisecond, "expected state %s, got %s", state, c.Health().State())
}

func TestClient_ConnectAndReceive(t *testing.T) {
	conn := newFakeConn()
	h := &recordingHandler{}
	c, _ := startClient(t, Config{URL: "ws://test"}, connDialer(conn), h)

	waitState(t, c, domain.StateConnected)
	assert.True(t, c.Health().Connected())
	assert.Equal(t, 0, c.Health().Current().Attempts)

	conn.frames <- []byte(`{"type":"welcome","message":"hi"}`)
	require.Eventually(t, func() bool { return len(h.Frames()) == 1 }, time.Second, 2*time.Millisecond)
	assert.JSONEq(t, `{"type":"welcome","message":"hi"}`, h.Frames()[0])
}

func TestClient_SubscribesConfiguredTopics(t *testing.T) {
	conn := newFakeConn()
	c, _ := startClient(t, Config{URL: "ws://test", Topics: []string{"politics", "economy"}}, connDialer(conn), nil)
	waitState(t, c, domain.StateConnected)

	require.Eventually(t, func() bool { return len(conn.written()) == 1 }, time.Second, 2*time.Millisecond)
	assert.JSONEq(t, `{"type":"subscribe","topics":["politics","economy"]}`, conn.written()[0])
}

func TestClient_ReconnectAfterAbnormalClose(t *testing.T) {
	conn1, conn2 := newFakeConn(), newFakeConn()
	d := connDialer(conn1, conn2)
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 5 * time.Millisecond}, d, nil)
	waitState(t, c, domain.StateConnected)

	conn1.closeWith(CloseAbnormal)
	require.Eventually(t, func() bool { return d.Calls() == 2 && c.Health().State() == domain.StateConnected },
		2*time.Second, 2*time.Millisecond)
	assert.Equal(t, 0, c.Health().Current().Attempts, "retry counter reset on success")
	assert.Empty(t, c.Health().Current().LastError)
}

func TestClient_FailsAfterMaxReconnectAttempts(t *testing.T) {
	conn1 := newFakeConn()
	gate := make(chan struct{})
	d := &fakeDialer{fn: func(ctx context.Context, call int) (Conn, error) {
		if call == 1 {
			return conn1, nil
		}
		select {
		case <-gate:
		case <-ctx.Done():
		}
		return nil, errors.New("connection refused")
	}}

	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 5 * time.Millisecond, MaxReconnectAttempts: 5}, d, nil)
	waitState(t, c, domain.StateConnected)
	conn1.closeWith(CloseAbnormal)

	for attempt := 1; attempt <= 5; attempt++ {
		require.Eventually(t, func() bool { return d.Calls() == attempt+1 }, 2*time.Second, 2*time.Millisecond)
		h := c.Health().Current()
		assert.Equal(t, domain.StateReconnecting, h.State, "attempt %d", attempt)
		assert.Equal(t, attempt, h.Attempts)
		gate <- struct{}{}
	}

	waitState(t, c, domain.StateFailed)
	assert.Equal(t, "failed to reconnect after maximum attempts", c.Health().Current().LastError)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 6, d.Calls(), "no dials after failure")
	assert.Equal(t, domain.StateFailed, c.Health().State())
}

func TestClient_NormalCloseIsNotRetried(t *testing.T) {
	conn := newFakeConn()
	d := connDialer(conn, newFakeConn())
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 5 * time.Millisecond}, d, nil)
	waitState(t, c, domain.StateConnected)

	conn.closeWith(CloseNormal)
	waitState(t, c, domain.StateDisconnected)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, d.Calls())
}

func TestClient_DisconnectWhileReconnecting(t *testing.T) {
	conn := newFakeConn()
	d := connDialer(conn, newFakeConn())
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 100 * time.Millisecond}, d, nil)
	waitState(t, c, domain.StateConnected)

	conn.closeWith(CloseAbnormal)
	waitState(t, c, domain.StateReconnecting)

	require.NoError(t, c.Disconnect(context.Background()))
	assert.Equal(t, domain.StateDisconnected, c.Health().State())

	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 1, d.Calls(), "pending reconnect canceled")
	assert.Equal(t, domain.StateDisconnected, c.Health().State())
}

func TestClient_DisconnectClosesWithNormalCode(t *testing.T) {
	conn := newFakeConn()
	d := connDialer(conn, newFakeConn())
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 5 * time.Millisecond}, d, nil)
	waitState(t, c, domain.StateConnected)

	require.NoError(t, c.Disconnect(context.Background()))
	assert.Equal(t, domain.StateDisconnected, c.Health().State())
	assert.True(t, conn.isClosed())
	assert.Equal(t, CloseNormal, conn.code())

	// disconnect while disconnected is a no-op
	require.NoError(t, c.Disconnect(context.Background()))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, d.Calls())
	assert.Equal(t, domain.StateDisconnected, c.Health().State())
}

func TestClient_ConnectWhileConnectedIsNoop(t *testing.T) {
	conn := newFakeConn()
	d := connDialer(conn, newFakeConn())
	c, _ := startClient(t, Config{URL: "ws://test"}, d, nil)
	waitState(t, c, domain.StateConnected)

	require.NoError(t, c.Connect(context.Background()))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, d.Calls())
	assert.False(t, conn.isClosed())
}

func TestClient_ConnectAfterFailure(t *testing.T) {
	conn1, conn3 := newFakeConn(), newFakeConn()
	d := &fakeDialer{fn: func(_ context.Context, call int) (Conn, error) {
		switch call {
		case 1:
			return conn1, nil
		case 3:
			return conn3, nil
		default:
			return nil, errors.New("connection refused")
		}
	}}
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 5 * time.Millisecond, MaxReconnectAttempts: 1}, d, nil)
	waitState(t, c, domain.StateConnected)

	conn1.closeWith(CloseAbnormal)
	waitState(t, c, domain.StateFailed)
	assert.Equal(t, 2, d.Calls())

	require.NoError(t, c.Connect(context.Background()))
	waitState(t, c, domain.StateConnected)
	assert.Equal(t, 3, d.Calls())
}

func TestClient_ConnectAfterDisconnect(t *testing.T) {
	conn1, conn2 := newFakeConn(), newFakeConn()
	d := connDialer(conn1, conn2)
	c, _ := startClient(t, Config{URL: "ws://test"}, d, nil)
	waitState(t, c, domain.StateConnected)

	require.NoError(t, c.Disconnect(context.Background()))
	require.NoError(t, c.Connect(context.Background()))
	waitState(t, c, domain.StateConnected)
	assert.Equal(t, 2, d.Calls())
	assert.True(t, conn1.isClosed())
	assert.False(t, conn2.isClosed())
}

func TestClient_DialFailureStartsReconnect(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{fn: func(_ context.Context, call int) (Conn, error) {
		if call == 1 {
			return nil, errors.New("no route to host")
		}
		return conn, nil
	}}
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 5 * time.Millisecond}, d, nil)
	waitState(t, c, domain.StateConnected)
	assert.Equal(t, 2, d.Calls())
}

func TestClient_Send(t *testing.T) {
	conn := newFakeConn()
	c, _ := startClient(t, Config{URL: "ws://test"}, connDialer(conn), nil)
	waitState(t, c, domain.StateConnected)

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.RequestStats(ctx))
	require.NoError(t, c.Subscribe(ctx, []string{"health"}))

	written := conn.written()
	require.Len(t, written, 3)
	assert.JSONEq(t, `{"type":"ping"}`, written[0])
	assert.JSONEq(t, `{"type":"get_stats"}`, written[1])
	assert.JSONEq(t, `{"type":"subscribe","topics":["health"]}`, written[2])
}

func TestClient_SendNotConnected(t *testing.T) {
	d := &fakeDialer{fn: func(context.Context, int) (Conn, error) { return nil, errors.New("refused") }}
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: time.Hour}, d, nil)
	waitState(t, c, domain.StateReconnecting)

	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestClient_Drop(t *testing.T) {
	conn1, conn2 := newFakeConn(), newFakeConn()
	d := connDialer(conn1, conn2)
	c, _ := startClient(t, Config{URL: "ws://test", ReconnectDelay: 5 * time.Millisecond}, d, nil)
	waitState(t, c, domain.StateConnected)

	require.NoError(t, c.Drop(context.Background(), "no pong"))
	assert.Equal(t, CloseAbnormal, conn1.code())
	require.Eventually(t, func() bool { return d.Calls() == 2 && c.Health().Connected() }, 2*time.Second, 2*time.Millisecond)
}

func TestClient_StopClosesConnection(t *testing.T) {
	conn := newFakeConn()
	c, stop := startClient(t, Config{URL: "ws://test"}, connDialer(conn), nil)
	waitState(t, c, domain.StateConnected)

	stop()
	assert.True(t, conn.isClosed())
	assert.Equal(t, CloseNormal, conn.code())
	assert.Equal(t, domain.StateDisconnected, c.Health().State())
	assert.ErrorIs(t, c.Ping(context.Background()), ErrClientClosed)
	assert.ErrorIs(t, c.Connect(context.Background()), ErrClientClosed)
}

func TestClient_StopCancelsPendingReconnect(t *testing.T) {
	conn := newFakeConn()
	d := connDialer(conn, newFakeConn())
	c, stop := startClient(t, Config{URL: "ws://test", ReconnectDelay: 50 * time.Millisecond}, d, nil)
	waitState(t, c, domain.StateConnected)

	conn.closeWith(CloseAbnormal)
	waitState(t, c, domain.StateReconnecting)
	stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, d.Calls())
}

func TestClient_RunTwice(t *testing.T) {
	c, _ := startClient(t, Config{URL: "ws://test"}, connDialer(newFakeConn()), nil)
	waitState(t, c, domain.StateConnected)
	assert.Error(t, c.Run(context.Background()))
}

func TestClient_HealthSubscription(t *testing.T) {
	conn := newFakeConn()
	c := NewClient(Config{URL: "ws://test"}, connDialer(conn), &recordingHandler{})
	updates, unsubscribe := c.Health().Subscribe()
	defer unsubscribe()

	first := <-updates
	assert.Equal(t, domain.StateDisconnected, first.State)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case h := <-updates:
			if h.State == domain.StateConnected {
				assert.True(t, h.Connected)
				return
			}
		case <-timeout:
			t.Fatal("no connected update")
		}
	}
}

func TestClient_StopClosesLateConnection(t *testing.T) {
	for i := range 40 {
		conn := newFakeConn()
		release := make(chan struct{})
		d := &fakeDialer{fn: func(context.Context, int) (Conn, error) {
			<-release // dial completes regardless of ctx
			return conn, nil
		}}
		c := NewClient(Config{URL: "ws://test"}, d, &recordingHandler{})
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- c.Run(ctx) }()
		require.Eventually(t, func() bool { return d.Calls() == 1 }, time.Second, time.Millisecond)

		if i%2 == 0 {
			// connection arrives after the loop stopped
			cancel()
			time.Sleep(time.Millisecond)
			close(release)
		} else {
			// connection and shutdown race each other
			close(release)
			cancel()
		}

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("client did not stop")
		}
		require.True(t, conn.isClosed(), "connection left open, iteration %d", i)
		assert.Equal(t, CloseNormal, conn.code())
		assert.Equal(t, domain.StateDisconnected, c.Health().State())
	}
}
