package ws

import (
	"encoding/json"
	"sync"

	"gaia_backend/internal/domain"
	"gaia_backend/internal/logger"
)

// Event is a board change pushed to the owner's open connections. The
// board is still fetched over REST; the socket only signals changes.
type Event struct {
	Type   string       `json:"type"` // task_created, task_updated, task_moved, task_deleted
	Task   *domain.Task `json:"task,omitempty"`
	TaskID int64        `json:"taskId,omitempty"`
}

// Hub tracks open board connections per user. A user may have several
// tabs open; every one of them receives the same events.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
}

// Publish sends an event to all of the user's connections. Slow clients
// are skipped rather than blocking the request that caused the event.
func (h *Hub) Publish(userID int64, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("ws: marshal event failed", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws: dropping event for slow client", "user_id", userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
