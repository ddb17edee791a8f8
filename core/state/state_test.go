package state

import "testing"

func TestBindingState_String(t *testing.T) {
	tests := []struct {
		state    BindingState
		expected string
	}{
		{StateUnbound, "Unbound"},
		{StateBound, "Bound"},
		{BindingState(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("BindingState.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindingState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     BindingState
		to       BindingState
		expected bool
	}{
		{"Unbound -> Bound", StateUnbound, StateBound, true},
		{"Unbound -> Unbound (invalid)", StateUnbound, StateUnbound, false},
		{"Bound -> Unbound (invalid)", StateBound, StateUnbound, false},
		{"Bound -> Bound (invalid)", StateBound, StateBound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindingState_Predicates(t *testing.T) {
	if StateUnbound.IsTerminal() || !StateBound.IsTerminal() {
		t.Error("only Bound is terminal")
	}
	if StateUnbound.CanCreateViewModels() || !StateBound.CanCreateViewModels() {
		t.Error("only Bound can create view-models")
	}
}

func TestTransitionError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TransitionError
		expected string
	}{
		{
			"with reason",
			NewTransitionError(StateBound, StateBound, "already bound"),
			"invalid state transition from Bound to Bound: already bound",
		},
		{
			"without reason",
			NewTransitionError(StateBound, StateUnbound, ""),
			"invalid state transition from Bound to Unbound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}
