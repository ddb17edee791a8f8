// Package event defines the diagnostic events published while commands run
// and controllers manage view-models. Events are consumed by UI bridges and
// logging subscribers; nothing in the command protocol depends on them.
package event

import (
	"time"

	"mvvmkit-go/core/state"
)

// Event is the base interface for all events.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// ContextEvent is an event that originates from a specific session context.
type ContextEvent interface {
	Event
	// ContextID returns the source context ID
	ContextID() string
}

// baseContextEvent provides common implementation for context events.
type baseContextEvent struct {
	contextID string
}

func (e *baseContextEvent) ContextID() string {
	return e.contextID
}

// CommandDispatched is published after a dispatcher ran a command successfully.
type CommandDispatched struct {
	baseContextEvent
	Command  string
	Argument any
	Elapsed  time.Duration
}

func NewCommandDispatched(contextID, command string, argument any, elapsed time.Duration) *CommandDispatched {
	return &CommandDispatched{
		baseContextEvent: baseContextEvent{contextID: contextID},
		Command:          command,
		Argument:         argument,
		Elapsed:          elapsed,
	}
}

func (e *CommandDispatched) EventName() string {
	return "CommandDispatched"
}

// CommandFailed is published when a dispatched command returned an error.
type CommandFailed struct {
	baseContextEvent
	Command string
	Error   error
}

func NewCommandFailed(contextID, command string, err error) *CommandFailed {
	return &CommandFailed{
		baseContextEvent: baseContextEvent{contextID: contextID},
		Command:          command,
		Error:            err,
	}
}

func (e *CommandFailed) EventName() string {
	return "CommandFailed"
}

// ViewModelCreated is published when a controller creates a new view-model.
// Lookups that return an existing instance publish nothing.
type ViewModelCreated struct {
	baseContextEvent
	Identifier string
	Kind       string
}

func NewViewModelCreated(contextID, identifier, kind string) *ViewModelCreated {
	return &ViewModelCreated{
		baseContextEvent: baseContextEvent{contextID: contextID},
		Identifier:       identifier,
		Kind:             kind,
	}
}

func (e *ViewModelCreated) EventName() string {
	return "ViewModelCreated"
}

// MessageRelayed is published after a controller relayed a named message to
// the context's session manager.
type MessageRelayed struct {
	baseContextEvent
	Message string
	Manager string
}

func NewMessageRelayed(contextID, message, manager string) *MessageRelayed {
	return &MessageRelayed{
		baseContextEvent: baseContextEvent{contextID: contextID},
		Message:          message,
		Manager:          manager,
	}
}

func (e *MessageRelayed) EventName() string {
	return "MessageRelayed"
}

// ControllerStateChanged is published when a controller is bound to a context.
type ControllerStateChanged struct {
	baseContextEvent
	Controller string
	OldState   state.BindingState
	NewState   state.BindingState
}

func NewControllerStateChanged(contextID, controller string, oldState, newState state.BindingState) *ControllerStateChanged {
	return &ControllerStateChanged{
		baseContextEvent: baseContextEvent{contextID: contextID},
		Controller:       controller,
		OldState:         oldState,
		NewState:         newState,
	}
}

func (e *ControllerStateChanged) EventName() string {
	return "ControllerStateChanged"
}
