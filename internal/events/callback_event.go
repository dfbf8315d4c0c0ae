package events

import "sync"

// CallbackEvent fans a value out to registered callback functions. Unlike
// ChannelEvent the delivery is synchronous: Notify invokes every callback
// on the calling goroutine, outside the registry lock.
type CallbackEvent[T any] struct {
	mu        sync.RWMutex
	callbacks map[uint64]func(T)
	nextID    uint64

	replayLast bool
	last       T
	hasLast    bool
}

// NewCallbackEvent creates a CallbackEvent. With replayLast set, a callback
// registering after the first Notify is invoked immediately with the latest
// value.
func NewCallbackEvent[T any](replayLast bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{
		callbacks:  make(map[uint64]func(T)),
		replayLast: replayLast,
	}
}

// Listen registers callback and returns a deregistration function.
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.callbacks[id] = callback
	replay := e.replayLast && e.hasLast
	last := e.last
	e.mu.Unlock()

	if replay {
		callback(last)
	}

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.callbacks, id)
	}
}

// Notify invokes every registered callback with value.
func (e *CallbackEvent[T]) Notify(value T) {
	e.mu.Lock()
	if e.replayLast {
		e.last = value
		e.hasLast = true
	}
	targets := make([]func(T), 0, len(e.callbacks))
	for _, callback := range e.callbacks {
		targets = append(targets, callback)
	}
	e.mu.Unlock()

	for _, callback := range targets {
		callback(value)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *CallbackEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.callbacks)
}
