// Package events provides the small pub/sub primitives that connect the
// model, ledger and views without direct coupling.
package events

import "sync"

// ChannelEvent fans a value out to registered channels. T is the value type.
//
// Sends are non-blocking: a listener whose channel is full misses that
// notification. Listeners that care about every value should use a buffered
// channel and drain it promptly.
type ChannelEvent[T any] struct {
	mu          sync.RWMutex
	subscribers []subscriber[T]
	nextID      uint64

	// replayLast: when set, the most recent Notify value is delivered to
	// each new listener at registration time.
	replayLast bool
	last       T
	hasLast    bool
}

type subscriber[T any] struct {
	id uint64
	ch chan<- T
}

// NewChannelEvent creates a ChannelEvent. With replayLast set, a listener
// registering after the first Notify immediately receives the latest value.
func NewChannelEvent[T any](replayLast bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{replayLast: replayLast}
}

// Listen registers ch and returns a deregistration function.
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subscribers = append(e.subscribers, subscriber[T]{id: id, ch: ch})
	replay := e.replayLast && e.hasLast
	last := e.last
	e.mu.Unlock()

	if replay {
		select {
		case ch <- last:
		default:
		}
	}

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, sub := range e.subscribers {
			if sub.id == id {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Notify sends value to every registered channel without blocking.
func (e *ChannelEvent[T]) Notify(value T) {
	e.mu.Lock()
	if e.replayLast {
		e.last = value
		e.hasLast = true
	}
	targets := make([]chan<- T, len(e.subscribers))
	for i, sub := range e.subscribers {
		targets[i] = sub.ch
	}
	e.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- value:
		default:
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (e *ChannelEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}
