// Package tui provides the Bubble Tea front end for Quantum Squares: the
// mode menu, the board view, match history and the SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// EventMsg carries one engine event from the match into the update loop.
type EventMsg struct {
	Event squares.Event
	sink  *match.ChannelSink
}

// sinkClosedMsg is sent once the sink stops delivering events.
type sinkClosedMsg struct {
	sink *match.ChannelSink
}

// waitForEvent returns a command that blocks until the next match event.
// The model re-issues it after every EventMsg.
func waitForEvent(sink *match.ChannelSink) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-sink.Events():
			return EventMsg{Event: evt, sink: sink}
		case <-sink.Done():
			return sinkClosedMsg{sink: sink}
		}
	}
}
