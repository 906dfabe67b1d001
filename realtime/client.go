package realtime

import (
	"sync"
)

// Client represents one connected websocket session.
//
// Send is intentionally NOT closed by the hub to avoid panics from
// concurrent publishers; done signals the connection goroutines to
// stop instead. Close is idempotent.
type Client struct {
	OwnerID string
	Send    chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient constructs a Client with a bounded send queue.
func NewClient(ownerID string, sendQueueSize int) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = 64
	}
	return &Client{
		OwnerID: ownerID,
		Send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the client is shutting down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close signals the client goroutines to stop (idempotent).
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
