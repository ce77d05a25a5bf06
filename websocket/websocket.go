package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/cameroncuttingedge/titration_four/events"
)

// SnapshotFunc returns the current session state. It must be safe to call
// from any goroutine.
type SnapshotFunc func() events.GameState

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(e events.GameEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(e)
}

// Hub pushes session events to every connected UI.
type Hub struct {
	lock        sync.Mutex
	connections []*client
	upgrader    websocket.Upgrader
	snapshot    SnapshotFunc
}

// NewHub builds a hub. An empty origin list accepts any origin.
func NewHub(snapshot SnapshotFunc, allowedOrigins []string) *Hub {
	h := &Hub{snapshot: snapshot}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
		return false
	}
}

// Handler upgrades the request, sends the current snapshot, then keeps the
// connection registered until the peer goes away.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}
	c := &client{conn: conn}
	defer func() {
		h.deregisterConnection(c)
		conn.Close()
	}()

	h.registerConnection(c)
	h.sendSnapshot(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("WebSocket closed")
			return
		}
	}
}

func (h *Hub) sendSnapshot(c *client) {
	state := h.snapshot()
	e := events.GameEvent{Kind: events.Snapshot, SessionID: state.ID, Data: state}
	if err := c.send(e); err != nil {
		log.Error().Err(err).Str("sessionID", state.ID).Msg("Error sending game state")
	}
}

// Broadcast writes e to every registered connection.
func (h *Hub) Broadcast(e events.GameEvent) {
	h.lock.Lock()
	h.logAllConnections()
	connections := append([]*client(nil), h.connections...)
	h.lock.Unlock()

	if len(connections) == 0 {
		log.Debug().Str("sessionID", e.SessionID).Msg("No connections to broadcast")
		return
	}

	log.Debug().
		Str("sessionID", e.SessionID).
		Str("kind", string(e.Kind)).
		Int("connectionsCount", len(connections)).
		Msg("Broadcasting game event")
	for i, c := range connections {
		if err := c.send(e); err != nil {
			log.Error().Err(err).Str("sessionID", e.SessionID).Msgf("Failed to broadcast game event to connection %d", i)
		}
	}
}

// Run broadcasts events until the channel closes or ctx is done.
func (h *Hub) Run(ctx context.Context, in <-chan events.GameEvent) {
	log.Info().Msg("Event listener starting")
	defer log.Info().Msg("Event listener exited")
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-in:
			if !ok {
				return
			}
			h.Broadcast(e)
		}
	}
}

// Close drops every connection. Handlers return once their reads fail.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()
	for _, c := range h.connections {
		c.conn.Close()
	}
	h.connections = nil
}

// Count reports the number of registered connections.
func (h *Hub) Count() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.connections)
}

func (h *Hub) registerConnection(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.connections = append(h.connections, c)
	log.Info().Int("connectionsCount", len(h.connections)).Msg("WebSocket connection registered")
}

func (h *Hub) deregisterConnection(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	for i, existing := range h.connections {
		if existing == c {
			h.connections = append(h.connections[:i], h.connections[i+1:]...)
			log.Info().Int("remainingConnections", len(h.connections)).Msg("WebSocket connection deregistered")
			break
		}
	}
}

// logAllConnections expects h.lock to be held.
func (h *Hub) logAllConnections() {
	if len(h.connections) == 0 {
		return
	}
	addrs := make([]string, len(h.connections))
	for i, c := range h.connections {
		addrs[i] = c.conn.RemoteAddr().String()
	}
	log.Debug().Strs("connections", addrs).Msg("Current WebSocket connections")
}
