package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub fans progress events out to the websocket clients of a single
// process. Clients are keyed by user so an update only reaches the
// sockets of the user it belongs to.
type Hub struct {
	clients    map[*Client]bool
	publish    chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

type envelope struct {
	userID  uuid.UUID
	payload []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		publish:    make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user_id=%s total_clients=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | user_id=%s total_clients=%d", client.userID, total)
			}

		case msg := <-h.publish:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if c.userID == msg.userID {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}

			if h.logger != nil && len(targets) > 0 {
				h.logger.Printf("WS publish | user_id=%s clients=%d", msg.userID, len(targets))
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Publish enqueues a payload for every live socket of the given user.
// Drops the event instead of blocking when the buffer is full.
func (h *Hub) Publish(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.publish <- envelope{userID: userID, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS publish dropped | reason=buffer_full user_id=%s", userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
