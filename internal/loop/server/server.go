// Package server tracks the terminal sessions connected to one process.
// Each connection plays its own game; the hub only carries lifecycle
// notifications and the shared high score.
package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ClientHandle represents a client's registration with the hub.
type ClientHandle struct {
	ID        int
	SessionID string           // Unique across restarts, for log correlation
	Username  string           // Display name for this client
	EventsCh  chan ClientEvent // Events sent to client (shutdown, etc.)
}

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type      ClientEventType
	HighScore int // For high score events
	Username  string
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventHighScore
)

// Hub is the registry of connected clients. It is safe for concurrent use.
type Hub struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	highScore    int
	highScorer   string
	shuttingDown bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// A client registering during shutdown is told about it right away.
func (h *Hub) RegisterClient(username string) *ClientHandle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &ClientHandle{
		ID:        h.nextClientID,
		SessionID: uuid.NewString(),
		Username:  username,
		EventsCh:  make(chan ClientEvent, 16),
	}
	h.nextClientID++
	h.clients[handle.ID] = handle

	if h.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	return handle
}

// UnregisterClient removes a client from the hub and closes its event channel.
// Unregistering an unknown or already removed client is a no-op.
func (h *Hub) UnregisterClient(clientID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.clients[clientID]; ok {
		close(handle.EventsCh)
		delete(h.clients, clientID)
	}
}

// Players returns the number of connected clients.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ReportScore records a finished game. A new high score is announced to every client.
// Returns true if the score is the new high score.
func (h *Hub) ReportScore(clientID, score int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if score <= h.highScore {
		return false
	}
	h.highScore = score
	h.highScorer = ""
	if handle, ok := h.clients[clientID]; ok {
		h.highScorer = handle.Username
	}
	h.broadcastLocked(ClientEvent{Type: EventHighScore, HighScore: score, Username: h.highScorer})
	return true
}

// HighScore returns the best score reported so far and who made it.
func (h *Hub) HighScore() (int, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.highScore, h.highScorer
}

// Shutdown notifies all connected clients about the shutdown and waits for
// them to disconnect, up to the given timeout.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.Lock()
	h.shuttingDown = true
	h.broadcastLocked(ClientEvent{Type: EventServerShutdown})
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}

// broadcastLocked sends ev to every client without blocking. Must be called with lock held.
func (h *Hub) broadcastLocked(ev ClientEvent) {
	for _, handle := range h.clients {
		select {
		case handle.EventsCh <- ev:
		default:
			// Client is not draining events, drop
		}
	}
}
