// Package realtime broadcasts post mutation events to websocket subscribers.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feedwire/feed-service/internal/api/metrics"
	"github.com/feedwire/feed-service/internal/core/domain"
)

const sendBuffer = 16

// message is the wire frame sent to subscribers: the event name and the
// {action, post} payload of the mutation.
type message struct {
	Event   string           `json:"event"`
	Payload domain.PostEvent `json:"payload"`
}

// Hub fans post events out to every connected client. Publish never blocks:
// a client whose send buffer is full misses the event (at-most-once,
// best-effort delivery).
type Hub struct {
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// The feed is served cross-origin; the browser client carries no
			// credentials on the socket itself.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

// Publish implements ports.PostPublisher.
func (h *Hub) Publish(event domain.PostEvent) {
	raw, err := json.Marshal(message{Event: "posts", Payload: event})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode post event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			h.log.Debug().Msg("dropping post event for slow websocket client")
		}
	}
}

// Handle upgrades the request and subscribes the connection to post events
// until the peer disconnects.
func (h *Hub) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(cl)
	h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("websocket client connected")

	go h.writeLoop(cl)
	h.readLoop(cl)
	return nil
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	metrics.WebsocketClients.Inc()
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	_, present := h.clients[cl]
	delete(h.clients, cl)
	h.mu.Unlock()

	if present {
		metrics.WebsocketClients.Dec()
		close(cl.send)
		_ = cl.conn.Close()
	}
}

func (h *Hub) writeLoop(cl *client) {
	for raw := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.remove(cl)
			return
		}
	}
}

// readLoop discards inbound frames; it exists to detect the peer closing.
func (h *Hub) readLoop(cl *client) {
	defer h.remove(cl)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}
