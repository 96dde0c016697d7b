// Package spectate streams world snapshots to websocket viewers.
package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/nprice1/just-run/internal/games/justrun"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// Message is one frame as sent to spectators.
type Message struct {
	Type     string           `json:"type"`
	Hash     uint64           `json:"hash"`
	Events   []string         `json:"events,omitempty"`
	Snapshot justrun.Snapshot `json:"snapshot"`
}

// NewMessage captures the world's current frame.
func NewMessage(w *justrun.World) Message {
	snap := w.Snapshot()
	msg := Message{Type: "snapshot", Hash: snap.Hash(), Snapshot: snap}
	for _, e := range w.Events() {
		msg.Events = append(msg.Events, e.Kind.String())
	}
	return msg
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans published frames out to every connected spectator. Publish never
// blocks: a viewer that falls behind loses frames.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	last     []byte
	closed   bool
	dropped  uint64
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub. logger may be nil.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

// Publish encodes v and queues it for every spectator. New spectators
// receive the latest frame on connect.
func (h *Hub) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("spectate: cannot encode frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
	return nil
}

// Spectators returns the number of connected viewers.
func (h *Hub) Spectators() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many frames slow viewers have missed.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// ServeHTTP upgrades the request and streams frames until the viewer
// disconnects or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectator upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("spectator joined", "remote", r.RemoteAddr, "spectators", n)

	go h.readPump(c)
	h.writePump(c)
	h.logger.Info("spectator left", "remote", r.RemoteAddr)
}

// readPump discards viewer messages and unregisters on disconnect.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck // surfaced by the write
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck // best-effort goodbye
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "simulation ended"))
}

// remove unregisters c and ends its write pump. Safe to call twice.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close disconnects every spectator and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
