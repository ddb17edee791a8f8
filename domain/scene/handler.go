package scene

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"mvvmkit-go/core/command"
)

// Common errors for message handling.
var (
	ErrHandlerNotFound = errors.New("event handler not found")
	ErrArgumentCount   = errors.New("event handler argument count mismatch")
)

// Handler receives a relayed message.
type Handler interface {
	// AcceptsArguments reports whether the handler takes parameters.
	// Handlers that do not are never given the relayed model.
	AcceptsArguments() bool

	// Handle runs the handler with the relayed arguments.
	Handle(args []any) error
}

// Manager is the session manager messages are relayed to.
type Manager interface {
	// Handler returns the handler registered for message.
	Handler(message string) (Handler, bool)
}

// HandlerFunc is a handler that accepts any arguments.
type HandlerFunc func(args ...any) error

func (f HandlerFunc) AcceptsArguments() bool { return true }

func (f HandlerFunc) Handle(args []any) error { return f(args...) }

// ActionFunc is a handler that takes no arguments.
type ActionFunc func() error

func (f ActionFunc) AcceptsArguments() bool { return false }

func (f ActionFunc) Handle(args []any) error {
	if len(args) > 0 {
		return &ArgumentCountError{Want: 0, Got: len(args)}
	}
	return f()
}

// Typed adapts a single-argument function. The relayed arguments must be
// exactly one value of type T.
func Typed[T any](fn func(T) error) Handler {
	return HandlerFunc(func(args ...any) error {
		if len(args) != 1 {
			return &ArgumentCountError{Want: 1, Got: len(args)}
		}
		v, ok := args[0].(T)
		if !ok {
			return fmt.Errorf("handler argument of type %T, want %s: %w",
				args[0], reflect.TypeOf((*T)(nil)).Elem(), command.ErrArgumentType)
		}
		return fn(v)
	})
}

// HandlerTable maps message names to handlers. Embed a *HandlerTable in a
// manager type to satisfy Manager.
type HandlerTable struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewHandlerTable creates an empty handler table.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{
		handlers: make(map[string]Handler),
	}
}

// On registers h for message, replacing any previous handler, and returns
// the table for chaining.
func (t *HandlerTable) On(message string, h Handler) *HandlerTable {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[message] = h
	return t
}

// Handler returns the handler registered for message.
func (t *HandlerTable) Handler(message string) (Handler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handlers[message]
	return h, ok
}

// Messages returns the registered message names, sorted.
func (t *HandlerTable) Messages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered handlers.
func (t *HandlerTable) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handlers)
}

// MissingHandlerError reports a message with no handler on the manager.
type MissingHandlerError struct {
	Message string
	Manager string
}

// NewMissingHandlerError describes manager by its dynamic type.
func NewMissingHandlerError(message string, manager Manager) *MissingHandlerError {
	return &MissingHandlerError{Message: message, Manager: fmt.Sprintf("%T", manager)}
}

func (e *MissingHandlerError) Error() string {
	return fmt.Sprintf("event '%s' was not found on %s", e.Message, e.Manager)
}

func (e *MissingHandlerError) Unwrap() error {
	return ErrHandlerNotFound
}

// ArgumentCountError reports a handler invoked with the wrong number of arguments.
type ArgumentCountError struct {
	Want int
	Got  int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("event handler takes %d argument(s), got %d", e.Want, e.Got)
}

func (e *ArgumentCountError) Unwrap() error {
	return ErrArgumentCount
}
