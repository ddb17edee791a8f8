// Package presentation provides the fyne UI layer: command bindings for
// widgets and a bridge routing controller events back to the UI.
package presentation

import (
	"log/slog"
	"sync"
	"time"

	"mvvmkit-go/application"
	"mvvmkit-go/core/command"
	"mvvmkit-go/core/event"
	"mvvmkit-go/core/eventbus"
	"mvvmkit-go/core/state"
)

// UIEventBridge forwards UI actions to a controller and routes its events
// back to UI callbacks.
type UIEventBridge struct {
	controller *application.Controller
	eventBus   eventbus.EventBus
	logger     *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	subscriptionID string
}

// UICallbacks contains callbacks for UI updates. They run on the event bus
// goroutine; wrap widget updates in fyne.Do.
type UICallbacks struct {
	OnCommandDispatched      func(contextID, command string, elapsed time.Duration)
	OnCommandFailed          func(contextID, command string, err error)
	OnViewModelCreated       func(contextID, identifier, kind string)
	OnMessageRelayed         func(contextID, message, manager string)
	OnControllerStateChanged func(contextID, controller string, oldState, newState state.BindingState)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Controller *application.Controller
	EventBus   eventbus.EventBus
	Logger     *slog.Logger

	// ContextID restricts delivery to one session context. Empty receives all.
	ContextID string
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		controller: cfg.Controller,
		eventBus:   cfg.EventBus,
		logger:     cfg.Logger,
		callbacks:  &UICallbacks{},
	}

	if b.eventBus != nil {
		if cfg.ContextID != "" {
			b.subscriptionID = b.eventBus.SubscribeContext(cfg.ContextID, b.handleEvent)
		} else {
			b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
		}
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Controller returns the bridged controller.
func (b *UIEventBridge) Controller() *application.Controller {
	return b.controller
}

// ExecuteCommand runs cmd through the controller's dispatcher.
func (b *UIEventBridge) ExecuteCommand(cmd command.Executable, arg any) error {
	return b.controller.ExecuteCommand(cmd, arg)
}

// CreateViewModel creates (or returns) the view-model registered under
// identifier. An empty identifier generates one.
func (b *UIEventBridge) CreateViewModel(identifier string) (string, error) {
	vm, err := b.controller.Create(identifier)
	if err != nil {
		return "", err
	}
	return vm.Identifier(), nil
}

// Relay sends message to the active session manager. When identifier names
// a registered view-model it is passed as the model.
func (b *UIEventBridge) Relay(identifier, message string, args ...any) error {
	sc := b.controller.Context()
	if sc != nil && identifier != "" {
		if vm, ok := sc.Lookup(identifier); ok {
			return b.controller.Event(vm, message, args...)
		}
	}
	return b.controller.GameEvent(message, args...)
}

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.CommandDispatched:
		if callbacks.OnCommandDispatched != nil {
			callbacks.OnCommandDispatched(evt.ContextID(), evt.Command, evt.Elapsed)
		}

	case *event.CommandFailed:
		if callbacks.OnCommandFailed != nil {
			callbacks.OnCommandFailed(evt.ContextID(), evt.Command, evt.Error)
		}

	case *event.ViewModelCreated:
		if callbacks.OnViewModelCreated != nil {
			callbacks.OnViewModelCreated(evt.ContextID(), evt.Identifier, evt.Kind)
		}

	case *event.MessageRelayed:
		if callbacks.OnMessageRelayed != nil {
			callbacks.OnMessageRelayed(evt.ContextID(), evt.Message, evt.Manager)
		}

	case *event.ControllerStateChanged:
		if callbacks.OnControllerStateChanged != nil {
			callbacks.OnControllerStateChanged(evt.ContextID(), evt.Controller, evt.OldState, evt.NewState)
		}

	default:
		b.logger.Debug("Unhandled UI event", "event", e.EventName())
	}
}
