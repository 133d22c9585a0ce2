package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope pushed to subscribers.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// MessageToSend defines the structure for sending a message to a specific user.
type MessageToSend struct {
	TargetUserID uuid.UUID
	Payload      []byte
}

// Hub maintains the set of active clients and fans activity events out to them.
type Hub struct {
	// Registered clients. Maps user ID to a set of active client connections.
	clients map[uuid.UUID]map[*Client]bool

	broadcast  chan []byte
	sendDirect chan *MessageToSend
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		sendDirect: make(chan *MessageToSend, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]map[*Client]bool),
	}
}

// Run processes registrations and deliveries until ctx is cancelled, then
// closes every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	slog.Info("websocket hub started")
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, userClients := range h.clients {
				for client := range userClients {
					close(client.Send)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			close(h.done)
			slog.Info("websocket hub stopped")
			return

		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; !ok {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			slog.Debug("websocket client registered", "user_id", client.UserID, "connections", len(h.clients[client.UserID]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if userClients, ok := h.clients[client.UserID]; ok {
				if _, clientOk := userClients[client]; clientOk {
					delete(userClients, client)
					close(client.Send)
					if len(userClients) == 0 {
						delete(h.clients, client.UserID)
					}
					slog.Debug("websocket client unregistered", "user_id", client.UserID, "remaining", len(userClients))
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, userClients := range h.clients {
				for client := range userClients {
					h.deliver(client, message)
				}
			}
			h.mu.RUnlock()

		case direct := <-h.sendDirect:
			h.mu.RLock()
			for client := range h.clients[direct.TargetUserID] {
				h.deliver(client, direct.Payload)
			}
			h.mu.RUnlock()
		}
	}
}

// Attach registers a client unless the hub has already stopped.
func (h *Hub) Attach(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Detach unregisters a client; it is a no-op once the hub has stopped.
func (h *Hub) Detach(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		slog.Warn("websocket send buffer full, dropping event", "user_id", client.UserID)
	}
}

// Publish broadcasts an event to every connected client. It never blocks the
// caller; events are dropped when the hub is saturated or h is nil.
func (h *Hub) Publish(eventType string, payload interface{}) {
	if h == nil {
		return
	}
	data, ok := encode(eventType, payload)
	if !ok {
		return
	}
	select {
	case h.broadcast <- data:
	default:
		slog.Warn("websocket hub busy, dropping event", "type", eventType)
	}
}

// Notify sends an event to the connections of a single user.
func (h *Hub) Notify(userID uuid.UUID, eventType string, payload interface{}) {
	if h == nil {
		return
	}
	data, ok := encode(eventType, payload)
	if !ok {
		return
	}
	select {
	case h.sendDirect <- &MessageToSend{TargetUserID: userID, Payload: data}:
	default:
		slog.Warn("websocket hub busy, dropping notification", "type", eventType, "user_id", userID)
	}
}

// ConnectionCount reports how many connections a user currently holds.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func encode(eventType string, payload interface{}) ([]byte, bool) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, Timestamp: time.Now()})
	if err != nil {
		slog.Error("failed to encode websocket event", "type", eventType, "error", err)
		return nil, false
	}
	return data, true
}
