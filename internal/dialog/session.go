package dialog

import (
	"fmt"

	"github.com/google/uuid"
)

// DialogClass is the window class of the standard file dialogs
const DialogClass = "#32770"

// Kind selects which common dialog a session drives
type Kind int

const (
	OpenDialog Kind = iota
	SaveAsDialog
)

// Caption returns the title bar text the dialog is found by
func (k Kind) Caption() string {
	switch k {
	case OpenDialog:
		return "Open"
	case SaveAsDialog:
		return "Save As"
	default:
		return ""
	}
}

func (k Kind) String() string {
	if c := k.Caption(); c != "" {
		return c
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// State tracks a session through its lifetime
type State int

const (
	AwaitingOpen State = iota
	HandlesResolving
	Ready
	Interacting
	Closed
)

var stateNames = map[State]string{
	AwaitingOpen:     "AwaitingOpen",
	HandlesResolving: "HandlesResolving",
	Ready:            "Ready",
	Interacting:      "Interacting",
	Closed:           "Closed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Session holds the handles resolved for one dialog interaction. Handles
// are only trusted while Root is still a live window.
type Session struct {
	ID        string
	Kind      Kind
	Root      uintptr
	FileName  uintptr
	TypeCombo uintptr
	Action    uintptr
	Cancel    uintptr
	Path      string

	state State
}

func newSession(kind Kind) *Session {
	return &Session{
		ID:    uuid.NewString(),
		Kind:  kind,
		state: AwaitingOpen,
	}
}

// State returns the current lifecycle state
func (s *Session) State() State {
	return s.state
}

func (s *Session) advance(to State) {
	s.state = to
}

// complete reports whether every control handle has been resolved
func (s *Session) complete() bool {
	return s.FileName != 0 && s.TypeCombo != 0 && s.Action != 0 && s.Cancel != 0
}
