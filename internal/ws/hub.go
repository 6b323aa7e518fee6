package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// EventMenuChanged tells terminals to refetch the effective menu.
const EventMenuChanged = "menu.changed"

// Event is one message pushed to terminals.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outletEvent struct {
	OutletID uuid.UUID
	Event    Event
}

// Hub fans menu events out to the terminals connected for each outlet.
type Hub struct {
	// Registered clients by outlet ID
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *outletEvent

	// Closed when Run returns.
	done chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *outletEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for outletID, clients := range h.rooms {
				for client := range clients {
					close(client.send)
				}
				delete(h.rooms, outletID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.outletID] == nil {
				h.rooms[client.outletID] = make(map[*Client]bool)
			}
			h.rooms[client.outletID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event.Event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[event.OutletID] {
				select {
				case client.send <- message:
				default:
					// Slow terminal; drop it, it refetches on reconnect.
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.rooms[client.outletID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.outletID)
	}
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastToOutlet queues an event for every client of the outlet. It never
// blocks; false means the queue was full and the event was dropped.
func (h *Hub) BroadcastToOutlet(outletID uuid.UUID, event Event) bool {
	select {
	case h.broadcast <- &outletEvent{OutletID: outletID, Event: event}:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected terminals across all outlets.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.rooms {
		n += len(clients)
	}
	return n
}
