package match

import (
	"sync"

	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// EventSink is the transport-neutral receiver for match events.
type EventSink interface {
	// Send delivers an event. Must be non-blocking.
	Send(evt squares.Event)

	// Done returns a channel that closes when the sink stops listening.
	Done() <-chan struct{}
}

// ChannelSink is an EventSink backed by a buffered channel.
// Used by the TUI layer to bridge Bubble Tea with a match.
type ChannelSink struct {
	events   chan squares.Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSink creates a sink that buffers up to size events before
// dropping the oldest.
func NewChannelSink(size int) *ChannelSink {
	if size < 1 {
		size = 64
	}
	return &ChannelSink{
		events: make(chan squares.Event, size),
		done:   make(chan struct{}),
	}
}

// Send enqueues an event. If the buffer is full the oldest event is dropped.
func (s *ChannelSink) Send(evt squares.Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSink) Events() <-chan squares.Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

// Close stops delivery. Safe to call multiple times.
func (s *ChannelSink) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
