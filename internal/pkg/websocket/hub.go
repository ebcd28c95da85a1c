package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message is a session change pushed to an account's connections
type Message struct {
	// Type of change: "signed_in", "signed_out"
	Type string `json:"type"`

	AccountID string    `json:"accountId"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and pushes session changes to them
type Hub struct {
	// Registered clients organized by account ID
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// closed once Run has returned
	done chan struct{}

	// guards clients for readers outside the Run goroutine
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// join hands client to the running hub. It reports false once the hub has
// stopped, in which case the client was never registered.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.accountID]; !ok {
		h.clients[client.accountID] = make(map[*Client]bool)
	}
	h.clients[client.accountID][client] = true

	h.logger.Info().
		Str("accountID", client.accountID).
		Str("addr", client.remoteAddr).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.accountID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.accountID)
	}

	h.logger.Info().
		Str("accountID", client.accountID).
		Str("addr", client.remoteAddr).
		Msg("Client unregistered")
}

// broadcastMessage sends message to every connection of its account. Clients
// with a full buffer are dropped.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("accountID", message.AccountID).Msg("Failed to marshal message for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.AccountID]
	if !ok {
		h.logger.Debug().Str("accountID", message.AccountID).Msg("No clients for account")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("accountID", message.AccountID).
		Str("type", message.Type).
		Int("clientCount", len(clients)).
		Msg("Session change pushed")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Publish queues message for delivery. It never blocks; when the queue is
// full the message is dropped.
func (h *Hub) Publish(message *Message) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Str("accountID", message.AccountID).Msg("Hub queue full, dropping session change")
	}
}

// ClientsCount returns the number of connections for an account
func (h *Hub) ClientsCount(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[accountID])
}
