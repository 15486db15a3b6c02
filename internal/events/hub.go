package events

import (
	"sync"
	"time"
)

const defaultBuffer = 32

// Event is a typed notification about a catalog change.
type Event struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Hub fans events out to subscribers over per-subscriber buffered channels.
// A subscriber that falls behind loses events rather than blocking the
// publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan Event
	nextID uint64
	buffer int
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[uint64]chan Event),
		buffer: defaultBuffer,
	}
}

// Publish stamps the event and delivers it to every subscriber that has
// buffer room left.
func (h *Hub) Publish(evt Event) {
	evt.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Subscribe registers a listener. The returned cancel function detaches the
// listener and closes its channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.buffer)
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount reports how many listeners are attached.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
