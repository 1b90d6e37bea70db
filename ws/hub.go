// Package ws pushes moderation events to connected websocket clients.
package ws

import (
	"context"
	"sync"

	"restaurant-booking-server/logging"
	"restaurant-booking-server/metrics"
)

const MessageTypeReviewFlagged = "review_flagged"

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans messages out to every registered client. Slow clients are dropped.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast events until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			metrics.ModerationClients.Set(float64(total))
			logging.Info().Int("total_clients", total).Msg("moderation client connected")

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				h.remove(client)
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.ModerationClients.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("moderation client disconnected")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	metrics.ModerationClients.Set(0)
}

// Broadcast queues message for every client. It never blocks: when the queue
// is full the message is dropped.
func (h *Hub) Broadcast(message Message) {
	select {
	case h.broadcast <- message:
	default:
		logging.Warn().Str("type", message.Type).Msg("moderation broadcast queue full, message dropped")
	}
}

// ReviewFlagged announces a flagged review.
func (h *Hub) ReviewFlagged(review interface{}) {
	h.Broadcast(Message{Type: MessageTypeReviewFlagged, Data: review})
}

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

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
