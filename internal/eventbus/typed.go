package eventbus

import (
	"sync"
	"sync/atomic"
)

// DefaultBuffer is the channel capacity used by Subscribe.
const DefaultBuffer = 64

// TypedBus is a type-safe publish/subscribe bus for events of type T.
// Delivery never blocks the publisher: events are dropped for subscribers
// whose buffer is full.
type TypedBus[T any] struct {
	mu      sync.RWMutex
	subs    []chan T
	closed  bool
	dropped atomic.Uint64
}

// NewTyped creates a new TypedBus.
func NewTyped[T any]() *TypedBus[T] { return &TypedBus[T]{} }

// Publish sends the event to all subscribers.
func (b *TypedBus[T]) Publish(e T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe registers a subscriber with DefaultBuffer capacity.
func (b *TypedBus[T]) Subscribe() <-chan T { return b.SubscribeBuffered(DefaultBuffer) }

// SubscribeBuffered registers a subscriber whose channel holds up to size
// pending events.
func (b *TypedBus[T]) SubscribeBuffered(size int) <-chan T {
	if size < 0 {
		size = 0
	}
	ch := make(chan T, size)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *TypedBus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *TypedBus[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (b *TypedBus[T]) Dropped() uint64 { return b.dropped.Load() }

// Close closes the bus and all subscriber channels.
func (b *TypedBus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
