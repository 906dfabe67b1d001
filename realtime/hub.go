// Package realtime fans freshly created notifications out to connected
// WebSocket clients. Delivery is best-effort: nothing is buffered for
// offline clients, and slow clients are dropped.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stayware/go-property-server/notifications"
)

// Hub routes notification payloads to the subscribers of an owner id.
// It is intentionally minimal: persistence lives behind the
// notifications repository.
type Hub struct {
	log zerolog.Logger

	mu          sync.RWMutex
	subscribers map[string]map[*Client]struct{}
}

var _ notifications.Publisher = (*Hub)(nil)

// NewHub constructs a Hub instance.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:         log,
		subscribers: make(map[string]map[*Client]struct{}),
	}
}

// Subscribe registers a client for an owner id and returns it together
// with an unsubscribe function.
func (h *Hub) Subscribe(ownerID string, sendQueueSize int) (*Client, func()) {
	c := NewClient(ownerID, sendQueueSize)

	h.mu.Lock()
	if h.subscribers[ownerID] == nil {
		h.subscribers[ownerID] = make(map[*Client]struct{})
	}
	h.subscribers[ownerID][c] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		if set, ok := h.subscribers[ownerID]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.subscribers, ownerID)
			}
		}
		h.mu.Unlock()
		c.Close()
	}
}

// Publish pushes a notification to every connected client of its owner.
// Clients whose send queue is full are closed and skipped.
func (h *Hub) Publish(ownerID string, n *notifications.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		h.log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to encode notification")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subscribers[ownerID] {
		select {
		case c.Send <- payload:
		default:
			// Slow consumer; drop it rather than block the publisher.
			h.log.Warn().Str("owner_id", ownerID).Msg("dropping slow websocket client")
			c.Close()
		}
	}
}

// SubscriberCount reports how many clients are connected for an owner.
func (h *Hub) SubscriberCount(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[ownerID])
}
