package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowedTransition(t *testing.T) {
	tests := []struct {
		from State
		to   State
		want bool
	}{
		{StateIdle, StateResolving, true},
		{StateIdle, StateApplying, false},
		{StateResolving, StateReporting, true},
		{StatePreviewing, StateApplying, true},
		{StatePreviewing, StateAwaitingConfirmation, true},
		{StateAwaitingConfirmation, StateApplying, true},
		{StateApplying, StatePreviewing, false},
		{StateReporting, StateDone, true},
		{StateSelecting, StateFailed, true},
		{StateDone, StateFailed, false},
		{StateFailed, StateReporting, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isAllowedTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestMachineRecordsPath(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.transition(StateResolving))
	err := m.transition(StateApplying)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disallowed transition resolving -> applying")
	assert.Equal(t, StateResolving, m.current)
	assert.Equal(t, []State{StateIdle, StateResolving}, m.path)
}
