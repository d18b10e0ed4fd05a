package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"matchpoint/internal/game"
	"matchpoint/pkg/proto"
)

// Client is one websocket attached to a session's state stream. The owner
// of the connection drains Send in its write pump.
type Client struct {
	SessionID string
	Send      chan []byte
}

// NewClient creates a stream client for a session.
func NewClient(sessionID string) *Client {
	return &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, 8),
	}
}

type envelope struct {
	sessionID string
	data      []byte
}

// Hub fans state snapshots out to every client attached to a session. It is
// the in-process replacement for a broker: the game service publishes after
// each state change and the hub delivers to attached screens.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
}

// NewHub creates a hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 16),
	}
}

// Run owns the client registry until the context is canceled. All map
// access happens on this goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.clients {
				for c := range clients {
					close(c.Send)
				}
			}
			return

		case c := <-h.register:
			if h.clients[c.SessionID] == nil {
				h.clients[c.SessionID] = make(map[*Client]bool)
			}
			h.clients[c.SessionID][c] = true

		case c := <-h.unregister:
			if clients, ok := h.clients[c.SessionID]; ok {
				if clients[c] {
					delete(clients, c)
					close(c.Send)
				}
				if len(clients) == 0 {
					delete(h.clients, c.SessionID)
				}
			}

		case env := <-h.broadcast:
			for c := range h.clients[env.sessionID] {
				select {
				case c.Send <- env.data:
				default:
					// Slow consumer; drop the snapshot rather than stall
					// the hub. The next publish catches it up.
				}
			}
		}
	}
}

// Register attaches a client to its session's stream.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister detaches a client and closes its Send channel.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Publish sends a snapshot to every client attached to the session. It
// satisfies the game service's Notifier interface.
func (h *Hub) Publish(sessionID string, snap game.Snapshot) {
	msg := proto.ServerToClientMessage{Type: proto.TypeState, State: &snap}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal state message", "session.id", sessionID, "error", err)
		return
	}
	h.broadcast <- envelope{sessionID: sessionID, data: data}
}
