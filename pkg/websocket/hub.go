package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans deck events out to every connected client. There is a single
// stream; clients are read-only observers.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	stop     chan struct{}
	stopOnce sync.Once

	clients map[*Client]bool
}

// Event is one deck mutation as seen by stream subscribers.
type Event struct {
	Type    string
	Payload any
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		stop:       make(chan struct{}),
		clients:    map[*Client]bool{},
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			for c := range h.clients {
				h.removeClient(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			h.removeClient(c)
		case ev := <-h.broadcast:
			h.broadcastEvent(ev)
		}
	}
}

// Stop shuts the hub down. After Stop, Register/Unregister/Broadcast become
// no-ops instead of blocking against a dead run loop.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}

func (h *Hub) Broadcast(typ string, payload any) {
	select {
	case h.broadcast <- Event{Type: typ, Payload: payload}:
	case <-h.stop:
	default:
		// Queue full: drop rather than stall a deck operation.
	}
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	delete(h.clients, c)
	c.CloseOnce.Do(func() { close(c.Send) })
}

func (h *Hub) broadcastEvent(ev Event) {
	if len(h.clients) == 0 {
		return
	}

	msg := map[string]any{
		"type":      ev.Type,
		"payload":   ev.Payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws broadcast marshal error: type=%s err=%v", ev.Type, err)
		return
	}

	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			// Backpressure / dead client.
			h.removeClient(c)
		}
	}
}
