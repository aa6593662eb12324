package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bitebakers/brownie-backend/pkg/logger"
)

// Event is the payload pushed to connected admin sessions.
type Event struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Client is one connected admin session.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub is the broadcast registry for admin push notifications. It is
// constructor-injected wherever events are emitted, so services can be
// tested against it without a network listener. Delivery is
// fire-and-forget: no acknowledgment, no retry, no cross-session
// ordering guarantee. Broadcasting with no connected clients is a no-op.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

// NewHub creates a Hub. Run must be started on its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run processes registration and broadcast events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Admin session connected", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Admin session disconnected", map[string]interface{}{
				"user_id":            client.UserID,
				"remaining_sessions": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Send buffer full - drop the session asynchronously
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"user_id": client.UserID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds an admin session to the registry.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes an admin session from the registry.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast pushes an event to every connected admin session.
func (h *Hub) Broadcast(event Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal push event", err, nil)
		return err
	}

	select {
	case h.broadcast <- data:
		return nil
	default:
		// Channel full. Push delivery is best effort, so dropping the
		// event must not fail the caller.
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"type": event.Type,
		})
		return nil
	}
}

// ClientCount returns the number of connected admin sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
