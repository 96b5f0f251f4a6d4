package migrate

import (
	"fmt"

	"github.com/conn-castle/upshift/internal/messages"
)

// State is a phase of a run.
type State string

const (
	StateIdle                 State = "idle"
	StateResolving            State = "resolving"
	StateSelecting            State = "selecting"
	StatePreviewing           State = "previewing"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateApplying             State = "applying"
	StateReporting            State = "reporting"
	StateDone                 State = "done"
	StateFailed               State = "failed"
)

// IsTerminal reports whether no further transition is possible from s.
func IsTerminal(s State) bool {
	return s == StateDone || s == StateFailed
}

func isAllowedTransition(from, to State) bool {
	if to == StateFailed {
		return !IsTerminal(from)
	}
	switch from {
	case StateIdle:
		return to == StateResolving
	case StateResolving:
		return to == StateSelecting || to == StateReporting
	case StateSelecting:
		return to == StatePreviewing || to == StateReporting
	case StatePreviewing:
		return to == StateAwaitingConfirmation || to == StateApplying || to == StateReporting
	case StateAwaitingConfirmation:
		return to == StateApplying || to == StateReporting
	case StateApplying:
		return to == StateReporting
	case StateReporting:
		return to == StateDone
	default:
		return false
	}
}

// machine tracks the current state and every state visited.
type machine struct {
	current State
	path    []State
}

func newMachine() *machine {
	return &machine{current: StateIdle, path: []State{StateIdle}}
}

func (m *machine) transition(to State) error {
	if !isAllowedTransition(m.current, to) {
		return fmt.Errorf(messages.MigrateDisallowedTransition, m.current, to)
	}
	m.current = to
	m.path = append(m.path, to)
	return nil
}
