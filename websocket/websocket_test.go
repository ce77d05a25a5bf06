package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cameroncuttingedge/titration_four/events"
)

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) events.GameEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var e events.GameEvent
	require.NoError(t, conn.ReadJSON(&e))
	return e
}

func TestHub_SnapshotThenBroadcast(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(func() events.GameState {
		return events.GameState{ID: "s1", Status: "setup", Advantage: 7}
	}, nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.Handler))
	defer srv.Close()

	bus := events.NewBus(8)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx, bus.Events())
	}()

	first := dial(t, srv, nil)
	second := dial(t, srv, nil)

	for _, conn := range []*websocket.Conn{first, second} {
		e := readEvent(t, conn)
		assert.Equal(t, events.Snapshot, e.Kind)
		assert.Equal(t, "s1", e.SessionID)
		assert.Equal(t, 7.0, e.Data.Advantage)
	}
	assert.Equal(t, 2, hub.Count())

	bus.Publish(events.GameEvent{
		Kind:       events.AnswerResolved,
		SessionID:  "s1",
		Data:       events.GameState{ID: "s1", Status: "awaiting_column"},
		Resolution: &events.Resolution{Column: 2, Row: 5, Accepted: true, Reaction: "bubble"},
	})
	for _, conn := range []*websocket.Conn{first, second} {
		e := readEvent(t, conn)
		assert.Equal(t, events.AnswerResolved, e.Kind)
		assert.Equal(t, "awaiting_column", e.Data.Status)
		require.NotNil(t, e.Resolution)
		assert.Equal(t, "bubble", e.Resolution.Reaction)
	}

	require.NoError(t, first.Close())
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	wg.Wait()
	hub.Close()
	second.Close()
	bus.Close()
}

func TestHub_RunStopsWhenBusCloses(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(func() events.GameState { return events.GameState{} }, nil)
	bus := events.NewBus(1)
	done := make(chan struct{})
	go func() {
		hub.Run(context.Background(), bus.Events())
		close(done)
	}()
	bus.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the bus closed")
	}
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	hub := NewHub(func() events.GameState { return events.GameState{} }, []string{"http://localhost:5173"})
	srv := httptest.NewServer(http.HandlerFunc(hub.Handler))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn := dial(t, srv, http.Header{"Origin": {"http://localhost:5173"}})
	defer conn.Close()
	assert.Equal(t, events.Snapshot, readEvent(t, conn).Kind)
}
