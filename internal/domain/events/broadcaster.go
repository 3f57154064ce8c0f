package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/monitoring"
)

// Event types sent to stream subscribers.
const (
	TypeSystem        = "system"
	TypePong          = "pong"
	TypeWindowCreated = "window.created"
	TypeWindowUpdated = "window.updated"
	TypeWindowClosed  = "window.closed"
	TypeFSSaved       = "fs.saved"
	TypeFSDeleted     = "fs.deleted"
	TypeSheetUpdated  = "sheet.updated"
)

// DefaultBuffer is the channel capacity of each subscriber.
const DefaultBuffer = 64

// Event is one desktop change delivered to subscribers.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Broadcaster fans desktop events out to subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the event.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	buffer      int
	closed      bool
	dropped     atomic.Uint64
	metrics     *monitoring.Metrics
}

// NewBroadcaster creates a broadcaster whose subscribers buffer up to
// buffer events. A non-positive buffer uses DefaultBuffer.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broadcaster{
		subscribers: make(map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// WithMetrics adds metrics tracking to the broadcaster
func (b *Broadcaster) WithMetrics(metrics *monitoring.Metrics) *Broadcaster {
	b.metrics = metrics
	return b
}

// Subscribe adds a subscriber and returns its event channel. The caller
// must call Unsubscribe when done. After Close the returned channel is
// already closed.
func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

// Publish sends an event to every subscriber.
func (b *Broadcaster) Publish(event Event) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
			if b.metrics != nil {
				b.metrics.IncEventsDropped()
			}
		}
	}
}

// Emit publishes an event of the given type carrying data.
func (b *Broadcaster) Emit(typ string, data interface{}) {
	b.Publish(Event{Type: typ, Data: data})
}

// Count returns the current number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped returns how many deliveries were skipped for slow subscribers.
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// Close disconnects every subscriber. Later subscriptions receive a
// closed channel and publishing becomes a no-op.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
}
