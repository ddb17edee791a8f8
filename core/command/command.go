// Package command defines invocable units of application logic.
// A command wraps a bound action and announces each run through
// "executing" and "executed" notifications.
package command

import (
	"errors"
	"fmt"

	"mvvmkit-go/core/observer"
)

// ErrArgumentType is returned when a call-time parameter does not match the
// command's declared argument type.
var ErrArgumentType = errors.New("command argument type mismatch")

// Executable is the type-erased command surface used by dispatchers,
// controllers and view bindings.
type Executable interface {
	// Name returns the command name for logging/debugging.
	Name() string

	// Execute runs the bound action with the stored sender and parameter.
	Execute() error

	// ExecuteParameter overwrites the stored parameter with p (unless p is nil)
	// and runs the bound action.
	ExecuteParameter(p any) error

	// CanExecute reports whether the command would accept p.
	CanExecute(p any) bool

	// OnExecuting registers a handler that runs before the bound action.
	OnExecuting(handler func()) *observer.Subscription

	// OnExecuted registers a handler that runs after a successful action.
	OnExecuted(handler func()) *observer.Subscription
}

// Kind identifies which values a command fixes at construction.
type Kind int

const (
	// KindArgument commands receive a parameter only.
	KindArgument Kind = iota
	// KindSender commands receive the fixed sender only.
	KindSender
	// KindSenderArgument commands receive a sender and a parameter.
	KindSenderArgument
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "Argument"
	case KindSender:
		return "Sender"
	case KindSenderArgument:
		return "SenderArgument"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// None fills an unused type slot.
type None = struct{}

// ArgumentTypeError reports a call-time parameter of the wrong type.
type ArgumentTypeError struct {
	Command string
	Want    string
	Got     any
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("command %s: parameter of type %T, want %s", e.Command, e.Got, e.Want)
}

func (e *ArgumentTypeError) Unwrap() error {
	return ErrArgumentType
}
