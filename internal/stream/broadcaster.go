package stream

import (
	"context"
	"sync"

	"github.com/appetiteclub/foh/internal/events"
	"github.com/aquamarinepk/aqm"
)

// Broadcaster fans out board order-change events to SSE subscribers.
type Broadcaster struct {
	logger aqm.Logger

	mu          sync.RWMutex
	subscribers map[string]chan events.BoardOrderChangedEvent
	closed      bool
}

func NewBroadcaster(logger aqm.Logger) *Broadcaster {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Broadcaster{
		logger:      logger,
		subscribers: make(map[string]chan events.BoardOrderChangedEvent),
	}
}

// Publish sends the event to all subscribers. Slow subscribers are skipped
// rather than blocking the publisher.
func (b *Broadcaster) Publish(evt events.BoardOrderChangedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for subscriberID, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
			b.logger.Info("subscriber channel full, dropping event", "subscriber_id", subscriberID)
		}
	}
}

// Subscribe adds a new subscriber and returns its event channel.
func (b *Broadcaster) Subscribe(subscriberID string) <-chan events.BoardOrderChangedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan events.BoardOrderChangedEvent, 100)
	b.subscribers[subscriberID] = ch

	b.logger.Info("new SSE subscriber", "subscriber_id", subscriberID, "total_subscribers", len(b.subscribers))

	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[subscriberID]; ok {
		close(ch)
		delete(b.subscribers, subscriberID)
		b.logger.Info("SSE subscriber disconnected", "subscriber_id", subscriberID, "total_subscribers", len(b.subscribers))
	}
}

// Stop closes all subscriber channels.
func (b *Broadcaster) Stop(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
	return nil
}
