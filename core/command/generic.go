package command

import (
	"reflect"

	"mvvmkit-go/core/observer"
)

// Command binds an action to an optional sender S and parameter A.
// The three constructor families decide which of the two the action sees
// and which are fixed at construction.
type Command[S, A any] struct {
	name   string
	kind   Kind
	action func(S, A) error
	guard  func(A) bool

	sender S
	param  A

	executing observer.List[observer.Unit]
	executed  observer.List[observer.Unit]
}

// NewArgument creates an argument-only command whose parameter is supplied
// at invocation time.
func NewArgument[A any](action func(A) error) *Command[None, A] {
	return &Command[None, A]{
		name:   "Command",
		kind:   KindArgument,
		action: dropSender(action),
	}
}

// NewArgumentWith creates an argument-only command with a fixed parameter.
// A call-time parameter still overwrites it.
func NewArgumentWith[A any](param A, action func(A) error) *Command[None, A] {
	c := NewArgument(action)
	c.param = param
	return c
}

// NewSender creates a sender-only command. The fixed sender is passed to
// every run; call-time parameters are ignored.
func NewSender[S any](sender S, action func(S) error) *Command[S, None] {
	c := NewSenderUnbound(action)
	c.sender = sender
	return c
}

// NewSenderUnbound creates a sender-only command whose sender is assigned
// later with SetSender.
func NewSenderUnbound[S any](action func(S) error) *Command[S, None] {
	var run func(S, None) error
	if action != nil {
		run = func(s S, _ None) error { return action(s) }
	}
	return &Command[S, None]{
		name:   "Command",
		kind:   KindSender,
		action: run,
	}
}

// NewSenderArgument creates a command with a fixed sender whose parameter is
// supplied at invocation time.
func NewSenderArgument[S, A any](sender S, action func(S, A) error) *Command[S, A] {
	c := NewSenderArgumentUnbound(action)
	c.sender = sender
	return c
}

// NewSenderArgumentUnbound creates a sender+argument command without a sender.
func NewSenderArgumentUnbound[S, A any](action func(S, A) error) *Command[S, A] {
	return &Command[S, A]{
		name:   "Command",
		kind:   KindSenderArgument,
		action: action,
	}
}

func dropSender[A any](action func(A) error) func(None, A) error {
	if action == nil {
		return nil
	}
	return func(_ None, a A) error { return action(a) }
}

// Named sets the command name and returns the command.
func (c *Command[S, A]) Named(name string) *Command[S, A] {
	c.name = name
	return c
}

// Guard installs the predicate consulted by CanExecute and returns the command.
func (c *Command[S, A]) Guard(guard func(A) bool) *Command[S, A] {
	c.guard = guard
	return c
}

// Name returns the command name.
func (c *Command[S, A]) Name() string {
	return c.name
}

// Kind returns which values the command fixes at construction.
func (c *Command[S, A]) Kind() Kind {
	return c.kind
}

// Sender returns the stored sender.
func (c *Command[S, A]) Sender() S {
	return c.sender
}

// SetSender replaces the stored sender.
func (c *Command[S, A]) SetSender(sender S) {
	c.sender = sender
}

// Parameter returns the stored parameter.
func (c *Command[S, A]) Parameter() A {
	return c.param
}

// SetParameter replaces the stored parameter without running the command.
func (c *Command[S, A]) SetParameter(param A) {
	c.param = param
}

// Execute runs the bound action with the stored sender and parameter.
// The executing notification always fires first. The executed notification
// fires only if the action succeeds; an action error is returned unchanged.
func (c *Command[S, A]) Execute() error {
	c.executing.Notify(observer.Unit{})

	if c.action != nil {
		if err := c.action(c.sender, c.param); err != nil {
			return err
		}
	}

	c.executed.Notify(observer.Unit{})
	return nil
}

// ExecuteWith stores param and runs the command. Sender-only commands
// ignore param.
func (c *Command[S, A]) ExecuteWith(param A) error {
	if c.kind != KindSender {
		c.param = param
	}
	return c.Execute()
}

// ExecuteParameter is the untyped form of ExecuteWith. A nil p keeps the
// stored parameter. A p that is not an A fails before any notification fires.
func (c *Command[S, A]) ExecuteParameter(p any) error {
	if c.kind == KindSender || p == nil {
		return c.Execute()
	}

	param, ok := p.(A)
	if !ok {
		return &ArgumentTypeError{
			Command: c.name,
			Want:    reflect.TypeOf((*A)(nil)).Elem().String(),
			Got:     p,
		}
	}
	return c.ExecuteWith(param)
}

// CanExecute reports true unless a guard rejects the parameter. A nil p
// checks the stored parameter; a p of the wrong type is rejected.
func (c *Command[S, A]) CanExecute(p any) bool {
	if c.guard == nil {
		return true
	}
	if c.kind == KindSender || p == nil {
		return c.guard(c.param)
	}

	param, ok := p.(A)
	if !ok {
		return false
	}
	return c.guard(param)
}

// OnExecuting registers a handler that runs before the bound action.
func (c *Command[S, A]) OnExecuting(handler func()) *observer.Subscription {
	return c.executing.Subscribe(func(observer.Unit) { handler() })
}

// OnExecuted registers a handler that runs after a successful action.
func (c *Command[S, A]) OnExecuted(handler func()) *observer.Subscription {
	return c.executed.Subscribe(func(observer.Unit) { handler() })
}

// Subscribe treats the command as a source emitting one value per
// successful run. Failures are returned by Execute and never reach
// the observer's OnError.
func (c *Command[S, A]) Subscribe(o observer.Observer[observer.Unit]) *observer.Subscription {
	return c.executed.Subscribe(o.OnNext)
}

// OnNext runs the command, letting it sit downstream of another source.
func (c *Command[S, A]) OnNext(observer.Unit) error {
	return c.Execute()
}

// OnError returns err unchanged; upstream failures are never swallowed.
func (c *Command[S, A]) OnError(err error) error {
	return err
}

// OnCompleted does nothing.
func (c *Command[S, A]) OnCompleted() {}

var (
	_ Executable = (*Command[None, int])(nil)
	_ Executable = (*Command[string, None])(nil)
)
