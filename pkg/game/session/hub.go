package session

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

const writeTimeout = 3 * time.Second

// Hub tracks connected participants by id
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

// Add registers a connection and returns its participant id
func (h *Hub) Add(conn *websocket.Conn) string {
	id := uuid.New().String()
	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()
	return id
}

// Remove forgets a participant
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

// Count returns the number of connected participants
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Send writes a message to one participant
func (h *Hub) Send(id string, message []byte) error {
	h.mu.Lock()
	conn, ok := h.clients[id]
	h.mu.Unlock()
	if !ok {
		return ErrUnknownParticipant
	}
	return write(conn, message)
}

// Broadcast writes a message to every participant, dropping any that fail
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	for id, conn := range h.clients {
		if err := write(conn, message); err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, id)
		}
	}
	h.mu.Unlock()
}

func write(conn *websocket.Conn, message []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, message)
}
