package sse

import (
	"sync"

	"github.com/skillsenselab/meetscribe/logger"
)

// Client is one connected SSE subscriber, scoped to a single meeting.
type Client struct {
	id        string
	meetingID string
	events    chan []byte
}

// NewClient creates a new SSE client subscribed to a meeting's events.
func NewClient(id, meetingID string) *Client {
	return &Client{
		id:        id,
		meetingID: meetingID,
		events:    make(chan []byte, 256),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() string { return c.id }

// MeetingID returns the meeting the client is subscribed to.
func (c *Client) MeetingID() string { return c.meetingID }

// Events returns the channel for receiving events.
func (c *Client) Events() <-chan []byte { return c.events }

// Send queues data for the client. Returns false if the client's buffer is
// full, in which case the event is dropped rather than blocking the hub.
func (c *Client) Send(data []byte) bool {
	select {
	case c.events <- data:
		return true
	default:
		logger.Warn("sse client buffer full, dropping event", map[string]interface{}{
			"client_id":  c.id,
			"meeting_id": c.meetingID,
		})
		return false
	}
}

// Close closes the client's event channel.
func (c *Client) Close() {
	close(c.events)
}

// Hub routes meeting progress events to subscribed SSE clients.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *message
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
}

type message struct {
	meetingID string
	data      []byte
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *message, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. It blocks until Stop is called and
// should be run in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("sse client registered", map[string]interface{}{
				"client_id":     client.id,
				"meeting_id":    client.meetingID,
				"total_clients": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				client.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg.meetingID, msg.data)
		}
	}
}

// Stop signals the hub to shut down, closing every client connection.
// Safe to call multiple times.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.Close()
		delete(h.clients, id)
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastToMeeting queues data for every client subscribed to meetingID.
func (h *Hub) BroadcastToMeeting(meetingID string, data []byte) {
	h.broadcast <- &message{meetingID: meetingID, data: data}
}

// deliver sends data to matching clients from the hub goroutine.
func (h *Hub) deliver(meetingID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.meetingID == meetingID {
			client.Send(data)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Ensure Hub implements Broadcaster.
var _ Broadcaster = (*Hub)(nil)
