// Package dispatch decides how a command runs once something asked for it:
// immediately, queued until the host loop flushes, or wrapped in
// cross-cutting middleware.
package dispatch

import (
	"mvvmkit-go/core/command"
)

// Dispatcher runs commands on behalf of controllers. Implementations must
// call cmd.ExecuteParameter(arg) exactly once per ExecuteCommand call,
// synchronously or deferred.
type Dispatcher interface {
	ExecuteCommand(cmd command.Executable, arg any) error
}

// Func adapts a function to Dispatcher.
type Func func(cmd command.Executable, arg any) error

// ExecuteCommand calls f.
func (f Func) ExecuteCommand(cmd command.Executable, arg any) error {
	return f(cmd, arg)
}

// Middleware wraps a Dispatcher with additional behaviour.
type Middleware func(next Dispatcher) Dispatcher

// Chain wraps d with mws. The first middleware is outermost.
func Chain(d Dispatcher, mws ...Middleware) Dispatcher {
	for i := len(mws) - 1; i >= 0; i-- {
		d = mws[i](d)
	}
	return d
}

// Immediate runs each command synchronously on the caller's turn.
type Immediate struct{}

// ExecuteCommand runs cmd and returns its error.
func (Immediate) ExecuteCommand(cmd command.Executable, arg any) error {
	return cmd.ExecuteParameter(arg)
}
