// Package viewmodel defines presentation-facing state objects and the
// embeddable Base that implements their identity and command table.
package viewmodel

import (
	"fmt"
	"sort"
	"sync"

	"mvvmkit-go/core/command"
)

// Owner is the controller that created a view-model.
type Owner interface {
	// ExecuteCommand forwards cmd to the owner's dispatcher.
	ExecuteCommand(cmd command.Executable, arg any) error
}

// ViewModel is a state object identified uniquely within a session context.
type ViewModel interface {
	Identifier() string
	SetIdentifier(id string)

	// Owner returns the controller that created the view-model, or nil.
	Owner() Owner
	SetOwner(owner Owner)
}

// View is implemented by objects that render a view-model. Passing one as a
// relayed event argument is allowed but discouraged.
type View interface {
	ViewModel() ViewModel
}

// Snapshotter is implemented by view-models whose state can be persisted.
type Snapshotter interface {
	Snapshot() map[string]any
	Restore(state map[string]any) error
}

// Base implements ViewModel and a named command table. Embed it by value.
type Base struct {
	identifier string
	owner      Owner

	commands   map[string]command.Executable
	commandsMu sync.RWMutex
}

// Identifier returns the view-model identifier.
func (b *Base) Identifier() string {
	return b.identifier
}

// SetIdentifier assigns the view-model identifier.
func (b *Base) SetIdentifier(id string) {
	b.identifier = id
}

// Owner returns the owning controller.
func (b *Base) Owner() Owner {
	return b.owner
}

// SetOwner assigns the owning controller.
func (b *Base) SetOwner(owner Owner) {
	b.owner = owner
}

// BindCommand exposes cmd to view bindings under name.
// An existing binding with the same name is replaced.
func (b *Base) BindCommand(name string, cmd command.Executable) {
	b.commandsMu.Lock()
	defer b.commandsMu.Unlock()
	if b.commands == nil {
		b.commands = make(map[string]command.Executable)
	}
	b.commands[name] = cmd
}

// CommandFor returns the command bound under name.
func (b *Base) CommandFor(name string) (command.Executable, error) {
	b.commandsMu.RLock()
	defer b.commandsMu.RUnlock()

	cmd, ok := b.commands[name]
	if !ok {
		return nil, fmt.Errorf("view model %q: no command %q", b.identifier, name)
	}
	return cmd, nil
}

// CommandNames returns the bound command names, sorted.
func (b *Base) CommandNames() []string {
	b.commandsMu.RLock()
	defer b.commandsMu.RUnlock()

	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command through the owning controller, or directly
// when the view-model has no owner.
func (b *Base) Invoke(name string, arg any) error {
	cmd, err := b.CommandFor(name)
	if err != nil {
		return err
	}
	if b.owner == nil {
		return cmd.ExecuteParameter(arg)
	}
	return b.owner.ExecuteCommand(cmd, arg)
}
