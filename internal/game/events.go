package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/slidery/slidery/internal/config"
)

// Event is a live game event broadcast to connected SSE clients.
type Event struct {
	Type string      `json:"type"` // "session_created", "move_applied", "session_solved", "session_expired"
	Data interface{} `json:"data"`
}

// SessionCreatedData is the payload for session_created events.
type SessionCreatedData struct {
	SessionID string `json:"session_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Player    string `json:"player,omitempty"`
}

// MoveAppliedData is the payload for move_applied events.
type MoveAppliedData struct {
	SessionID string `json:"session_id"`
	Moved     int    `json:"moved"`
	MoveCount int    `json:"move_count"`
	State     State  `json:"state"`
}

// SessionSolvedData is the payload for session_solved events.
type SessionSolvedData struct {
	SessionID  string `json:"session_id"`
	Player     string `json:"player,omitempty"`
	MoveCount  int    `json:"move_count"`
	DurationMS int64  `json:"duration_ms"`
}

// SessionExpiredData is the payload for session_expired events.
type SessionExpiredData struct {
	SessionID string `json:"session_id"`
}

// RegistryStateData is the snapshot sent to newly connected SSE clients.
type RegistryStateData struct {
	ActiveSessions int `json:"active_sessions"`
}

// EventHub manages fan-out broadcasting of game events to connected SSE clients.
type EventHub struct {
	clients map[chan Event]struct{}
	mu      sync.RWMutex
}

// NewEventHub creates a new game event hub.
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[chan Event]struct{}),
	}
}

// Run blocks until ctx is cancelled, then closes all client channels.
func (h *EventHub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}

	slog.Info("event hub stopped", "reason", ctx.Err())
}

// Subscribe registers a new client and returns a channel to receive events.
func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, config.SSEHubChannelBuffer)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	clientCount := len(h.clients)
	h.mu.Unlock()

	slog.Info("SSE client subscribed", "totalClients", clientCount)

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	clientCount := len(h.clients)
	h.mu.Unlock()

	slog.Info("SSE client unsubscribed", "totalClients", clientCount)
}

// Broadcast sends an event to all connected clients.
// Non-blocking: if a client's channel is full, the event is dropped for that client.
func (h *EventHub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- event:
		default:
			slog.Warn("SSE event dropped for slow client", "eventType", event.Type)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
