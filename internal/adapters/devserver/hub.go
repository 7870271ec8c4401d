// Package devserver serves the build directory with live reload.
package devserver

import (
	"encoding/json"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.trai.ch/press/internal/core/ports"
)

var _ ports.Reloader = (*Hub)(nil)

const writeWait = 5 * time.Second

// Message types sent to browsers.
const (
	MessageReload = "reload"
	MessageCSS    = "css"
)

// Message is one live-reload instruction.
type Message struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
}

// MessageFor returns the instruction for a batch of changed paths relative to the
// build directory: a stylesheet swap when every path is CSS, a full reload otherwise.
func MessageFor(paths []string) Message {
	if len(paths) == 0 {
		return Message{Type: MessageReload}
	}
	for _, p := range paths {
		if path.Ext(p) != ".css" {
			return Message{Type: MessageReload}
		}
	}
	return Message{Type: MessageCSS, Path: "/" + strings.TrimPrefix(path.Clean("/"+paths[0]), "/")}
}

// Hub tracks connected browsers and broadcasts reload messages to them.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// ServeHTTP upgrades the request to a WebSocket and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.readLoop(c)
}

// readLoop drains the connection until the browser goes away.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

// Notify broadcasts exactly one message for paths.
func (h *Hub) Notify(paths ...string) {
	h.Broadcast(MessageFor(paths))
}

// Broadcast sends msg to every client. Clients whose write fails are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.remove(c)
		}
	}
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		_ = c.conn.Close()
	}
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopped"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
}
