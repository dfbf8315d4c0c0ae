package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChannelEvent(t *testing.T) {
	event := NewChannelEvent[string](false)
	require.NotNil(t, event)
	assert.Equal(t, 0, event.ListenerCount())
	assert.False(t, event.replayLast)

	event2 := NewChannelEvent[int](true)
	require.NotNil(t, event2)
	assert.True(t, event2.replayLast)
}

func TestChannelEvent_Listen_Notify_Basic(t *testing.T) {
	event := NewChannelEvent[string](false)

	ch := make(chan string, 10)
	unregister := event.Listen(ch)

	assert.Equal(t, 1, event.ListenerCount())

	event.Notify("test1")
	event.Notify("test2")

	received := make([]string, 0)
	for len(ch) > 0 {
		received = append(received, <-ch)
	}

	assert.Equal(t, []string{"test1", "test2"}, received)

	unregister()
	assert.Equal(t, 0, event.ListenerCount())

	event.Notify("test3")

	// Should not receive test3 since listener was removed
	select {
	case val := <-ch:
		t.Errorf("Unexpected value received after unregister: %s", val)
	default:
		// Expected - no value should be received
	}
}

func TestChannelEvent_MultipleListeners(t *testing.T) {
	event := NewChannelEvent[int](false)

	ch1 := make(chan int, 10)
	ch2 := make(chan int, 10)
	unregister1 := event.Listen(ch1)
	unregister2 := event.Listen(ch2)

	assert.Equal(t, 2, event.ListenerCount())

	event.Notify(42)
	event.Notify(100)

	assert.Equal(t, 42, <-ch1)
	assert.Equal(t, 100, <-ch1)
	assert.Equal(t, 42, <-ch2)
	assert.Equal(t, 100, <-ch2)

	unregister1()
	unregister2()
	assert.Equal(t, 0, event.ListenerCount())
}

func TestChannelEvent_ReplayLast_True_NoNotifyYet(t *testing.T) {
	event := NewChannelEvent[string](true)

	ch := make(chan string, 10)
	unregister := event.Listen(ch)

	// Should not receive anything since Notify hasn't been called yet
	select {
	case val := <-ch:
		t.Errorf("Unexpected value received: %s", val)
	default:
		// Expected - no value should be received
	}

	unregister()
}

func TestChannelEvent_ReplayLast_True_AfterNotify(t *testing.T) {
	event := NewChannelEvent[string](true)

	ch1 := make(chan string, 10)
	unregister1 := event.Listen(ch1)

	event.Notify("first-event")
	assert.Equal(t, "first-event", <-ch1)

	// Add a second listener - should receive the last event immediately
	ch2 := make(chan string, 10)
	unregister2 := event.Listen(ch2)
	assert.Equal(t, "first-event", <-ch2)

	// Notify again - both should receive
	event.Notify("second-event")
	assert.Equal(t, "second-event", <-ch1)
	assert.Equal(t, "second-event", <-ch2)

	unregister1()
	unregister2()
}

func TestChannelEvent_ReplayLast_False(t *testing.T) {
	event := NewChannelEvent[string](false)

	event.Notify("first-event")

	// Add listener after Notify - should NOT receive the last event
	ch := make(chan string, 10)
	unregister := event.Listen(ch)

	select {
	case val := <-ch:
		t.Errorf("Unexpected value received: %s", val)
	default:
		// Expected - should not receive last event
	}

	// Only new notifications should be received
	event.Notify("second-event")
	assert.Equal(t, "second-event", <-ch)

	unregister()
}

func TestChannelEvent_Listen_NilChannel(t *testing.T) {
	event := NewChannelEvent[string](false)

	assert.Panics(t, func() {
		event.Listen(nil)
	})
}

func TestChannelEvent_FullChannel(t *testing.T) {
	event := NewChannelEvent[string](false)

	// Create a channel with buffer size 1
	ch := make(chan string, 1)
	unregister := event.Listen(ch)

	// Fill the channel
	ch <- "blocking"

	// Notify - should be skipped since channel is full
	event.Notify("test1")
	event.Notify("test2")

	// Channel should still only have the blocking value
	assert.Equal(t, 1, len(ch))

	// Drain the channel
	<-ch

	// Next notify should work
	event.Notify("test3")
	assert.Equal(t, "test3", <-ch)

	unregister()
}

func TestChannelEvent_ConcurrentAccess(t *testing.T) {
	event := NewChannelEvent[int](false)

	channels := make([]chan int, 10)
	unregisters := make([]func(), 10)

	for i := 0; i < 10; i++ {
		ch := make(chan int, 100)
		channels[i] = ch
		unregisters[i] = event.Listen(ch)
	}

	assert.Equal(t, 10, event.ListenerCount())

	// Notify concurrently
	var wg sync.WaitGroup
	wg.Add(5)
	for i := 0; i < 5; i++ {
		go func(value int) {
			defer wg.Done()
			event.Notify(value)
		}(i)
	}
	wg.Wait()

	// Each channel should have received 5 values
	for i, ch := range channels {
		assert.Equal(t, 5, len(ch), "channel %d", i)
	}

	// Clean up listeners
	for _, unregister := range unregisters {
		unregister()
	}
	assert.Equal(t, 0, event.ListenerCount())
}
