package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Bus is the pub/sub hub between stores and whatever renders them.
// Delivery never blocks a store: a full subscriber misses the event and
// re-reads state from the store instead.
type Bus struct {
	mu      sync.RWMutex
	byType  map[string][]chan Event
	all     []chan Event
	logger  *slog.Logger
	closed  bool
	dropped atomic.Uint64
}

// NewBus creates a new event bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		byType: make(map[string][]chan Event),
		logger: logger,
	}
}

// Publish offers e to every matching subscriber. A nil Bus discards events.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.byType[e.EventType()] {
		b.offer(ch, e)
	}
	for _, ch := range b.all {
		b.offer(ch, e)
	}
}

func (b *Bus) offer(ch chan Event, e Event) {
	select {
	case ch <- e:
	default:
		b.dropped.Add(1)
		b.logger.Debug("subscriber full, event dropped",
			"type", e.EventType(),
			"entity_type", e.EntityType(),
			"entity_id", e.EntityID())
	}
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (b *Bus) Dropped() uint64 {
	if b == nil {
		return 0
	}
	return b.dropped.Load()
}

// Subscribe returns a channel for events of one type.
// On a nil or closed Bus the channel is already closed.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.subscribe(bufferSize, func(ch chan Event) {
		b.byType[eventType] = append(b.byType[eventType], ch)
	})
}

// SubscribeAll returns a channel for every event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.subscribe(bufferSize, func(ch chan Event) {
		b.all = append(b.all, ch)
	})
}

func (b *Bus) subscribe(bufferSize int, register func(chan Event)) <-chan Event {
	ch := make(chan Event, bufferSize)
	if b == nil {
		close(ch)
		return ch
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	register(ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.byType {
		if rest, ok := without(subs, ch); ok {
			b.byType[eventType] = rest
			return
		}
	}
	if rest, ok := without(b.all, ch); ok {
		b.all = rest
	}
}

// without removes and closes target from subs.
func without(subs []chan Event, target <-chan Event) ([]chan Event, bool) {
	for i, sub := range subs {
		if sub == target {
			close(sub)
			return append(subs[:i], subs[i+1:]...), true
		}
	}
	return subs, false
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.byType {
		for _, ch := range subs {
			close(ch)
		}
	}
	for _, ch := range b.all {
		close(ch)
	}
	b.byType = nil
	b.all = nil
	return nil
}
