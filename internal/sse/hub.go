// Package sse streams bus events to HTTP clients as server-sent events.
package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/Holmiboii/ummorpg/internal/event"
)

// Filter selects the events a client receives. Zero values match everything.
type Filter struct {
	EntityID string
	Types    map[event.Type]bool
}

// Matches reports whether evt passes the filter
func (f Filter) Matches(evt event.Event) bool {
	if f.EntityID != "" && f.EntityID != evt.EntityID {
		return false
	}
	if len(f.Types) > 0 && !f.Types[evt.Type] {
		return false
	}
	return true
}

// Client represents a connected SSE client
type Client struct {
	ID           string
	EventChannel chan event.Event
	Filter       Filter
}

// Hub manages SSE client connections and event broadcasting. Clients join
// and leave under mu, so once Stop returns every channel the hub handed out
// is closed and later registrations get a closed channel.
type Hub struct {
	clients   map[string]*Client
	broadcast chan event.Event
	mu        sync.RWMutex
	stopped   bool
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan event.Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts the hub down and closes every client channel. Calling it again
// is a no-op.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		h.stopped = true
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case evt := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.Filter.Matches(evt) {
					continue
				}
				// slow clients miss events rather than stalling the hub
				select {
				case client.EventChannel <- evt:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a new client to the hub. After Stop the returned client's
// channel is already closed.
func (h *Hub) Register(filter Filter) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan event.Event, ClientEventBuffer),
		Filter:       filter,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(client.EventChannel)
		return client
	}
	h.clients[client.ID] = client
	return client
}

// Unregister removes a client from the hub and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues evt for every matching client. It reports false when the
// broadcast buffer is full and the event was dropped.
func (h *Hub) Broadcast(evt event.Event) bool {
	select {
	case h.broadcast <- evt:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an event for transmission
func FormatSSEMessage(evt event.Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	// "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + evt.ID + "\n"
	msg += "event: " + string(evt.Type) + "\n"
	msg += "data: " + string(data) + "\n\n"
	return []byte(msg), nil
}
