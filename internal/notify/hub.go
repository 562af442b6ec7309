package notify

import (
	"encoding/json"
	"sync"

	"pizzeria-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is the frame pushed to connected clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	userID string
	admin  bool
	conn   *websocket.Conn
	send   chan []byte
}

// Hub is the in-process broadcaster behind the websocket endpoint.
// Sessions join the scope of their user id; admin sessions additionally
// receive the admin broadcast. Delivery is fire-and-forget: a session
// whose buffer is full is dropped, and nothing is replayed on reconnect.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

const sendBuffer = 16

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// PublishAdmin pushes an event to every connected admin session.
func (h *Hub) PublishAdmin(event string, payload any) {
	h.publish(event, payload, func(c *client) bool { return c.admin })
}

// PublishUser pushes an event to the sessions of one user.
func (h *Hub) PublishUser(userID, event string, payload any) {
	h.publish(event, payload, func(c *client) bool { return c.userID == userID })
}

func (h *Hub) publish(event string, payload any, match func(*client) bool) {
	frame, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		logger.L().Error("failed to marshal event",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}

	var stalled []*client

	h.mu.RLock()
	for c := range h.clients {
		if !match(c) {
			continue
		}
		select {
		case c.send <- frame:
		default:
			// slow consumer, cut it loose rather than block publishers
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		h.unregister(c)
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	// inbound frames are ignored, the read loop only detects disconnects
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
