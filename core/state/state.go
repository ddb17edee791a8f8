// Package state defines the controller binding state machine.
package state

import "fmt"

// BindingState represents whether a controller has a session context.
type BindingState int

const (
	// StateUnbound is the initial state: no context assigned yet.
	StateUnbound BindingState = iota
	// StateBound indicates a context has been assigned. It is terminal.
	StateBound
)

// String returns the string representation of the state.
func (s BindingState) String() string {
	switch s {
	case StateUnbound:
		return "Unbound"
	case StateBound:
		return "Bound"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
var validTransitions = map[BindingState][]BindingState{
	StateUnbound: {StateBound},
	StateBound:   {},
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s BindingState) CanTransitionTo(target BindingState) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed.
func (s BindingState) IsTerminal() bool {
	return s == StateBound
}

// CanCreateViewModels returns true if a controller in this state may look up
// and register view-models.
func (s BindingState) CanCreateViewModels() bool {
	return s == StateBound
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   BindingState
	To     BindingState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to BindingState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
