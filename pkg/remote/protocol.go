// Package remote exposes a pointer backend over a websocket so that input
// can come from outside the terminal, and streams drag snapshots back to
// every connected client.
package remote

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/dnd"
)

// EventType names a pointer event sent by a client.
type EventType string

const (
	EventPress   EventType = "press"
	EventMove    EventType = "move"
	EventRelease EventType = "release"
	EventCancel  EventType = "cancel"
)

// Event is one pointer event in cell coordinates.
type Event struct {
	Type EventType `json:"type"`
	X    int       `json:"x"`
	Y    int       `json:"y"`
}

// MessageType names a message sent by the server.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessageError    MessageType = "error"
)

// Message is what the server writes to clients.
type Message struct {
	Type     MessageType       `json:"type"`
	Snapshot *dnd.Snapshot     `json:"snapshot,omitempty"`
	Error    *errors.DragError `json:"error,omitempty"`
}

// toMsg converts a pointer event into the bubbletea message the backend
// expects. Cancel has no message form and yields nil.
func (e Event) toMsg() (tea.Msg, error) {
	switch e.Type {
	case EventPress:
		return tea.MouseMsg{X: e.X, Y: e.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, nil
	case EventMove:
		return tea.MouseMsg{X: e.X, Y: e.Y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, nil
	case EventRelease:
		return tea.MouseMsg{X: e.X, Y: e.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}, nil
	case EventCancel:
		return nil, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown event type '%s'", e.Type)).
			WithDetail("type", string(e.Type))
	}
}
