// Package tui is the Bubble Tea client for a garden match. The same model
// serves a local hot-seat table and every SSH session of `garden serve`.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/multiplayer"
)

// subscribedMsg reports the outcome of subscribing to the host.
type subscribedMsg struct {
	err error
}

// eventMsg wraps an event received from the host.
type eventMsg struct {
	evt multiplayer.SessionEvent
}

// resultMsg is the host's answer to a command this client sent.
type resultMsg struct {
	cmd garden.Command
	res garden.Result
	err error
}

// sessionClosedMsg is sent when the session's event channel is done.
type sessionClosedMsg struct{}

// waitForEvent returns a command that blocks until the next host event.
func waitForEvent(s *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return eventMsg{evt: evt}
		case <-s.Done():
			return sessionClosedMsg{}
		}
	}
}
