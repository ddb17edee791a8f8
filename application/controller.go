// Package application provides the controller that binds view-models to a
// session context and routes their commands and events.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"mvvmkit-go/core/command"
	"mvvmkit-go/core/dispatch"
	"mvvmkit-go/core/event"
	"mvvmkit-go/core/eventbus"
	"mvvmkit-go/core/observer"
	"mvvmkit-go/core/state"
	"mvvmkit-go/domain/scene"
	"mvvmkit-go/domain/viewmodel"
)

// Common errors for controller operations.
var (
	ErrUnbound       = errors.New("controller is not bound to a session context")
	ErrNoDispatcher  = errors.New("controller has no command dispatcher")
	ErrNoBinder      = errors.New("controller has no view model binder")
	ErrManagerNotSet = errors.New("session context has no active manager")
	ErrNilViewModel  = errors.New("binder returned a nil view model")
	ErrKindMismatch  = errors.New("snapshot kind does not match view model")
)

// Binder supplies the view-model specific half of a controller.
type Binder interface {
	// CreateEmpty returns a fresh, unwired view-model.
	CreateEmpty() viewmodel.ViewModel

	// Initialize wires a newly created view-model, typically binding its
	// commands and subscribing to them.
	Initialize(vm viewmodel.ViewModel)
}

// FuncBinder adapts two functions to Binder. Init may be nil.
type FuncBinder struct {
	New  func() viewmodel.ViewModel
	Init func(vm viewmodel.ViewModel)
}

// CreateEmpty calls New.
func (b FuncBinder) CreateEmpty() viewmodel.ViewModel {
	if b.New == nil {
		return nil
	}
	return b.New()
}

// Initialize calls Init when set.
func (b FuncBinder) Initialize(vm viewmodel.ViewModel) {
	if b.Init != nil {
		b.Init(vm)
	}
}

// ControllerConfig holds configuration for a Controller.
type ControllerConfig struct {
	// Name identifies the controller in logs and events. Defaults to "Controller".
	Name string

	// Context binds the controller immediately when set. Otherwise call Bind.
	Context *scene.Context

	Dispatcher dispatch.Dispatcher
	Binder     Binder
	EventBus   eventbus.EventBus
	Logger     *slog.Logger
}

// Controller owns view-model identity inside one session context, forwards
// command execution to its dispatcher and relays named events to the
// context's active session manager.
type Controller struct {
	name       string
	dispatcher dispatch.Dispatcher
	binder     Binder
	eventBus   eventbus.EventBus
	logger     *slog.Logger

	sceneCtx *scene.Context
	state    state.BindingState
	mu       sync.RWMutex
}

// NewController creates a controller. A nil config yields an unbound
// controller without dispatcher or binder.
func NewController(cfg *ControllerConfig) *Controller {
	if cfg == nil {
		cfg = &ControllerConfig{}
	}
	if cfg.Name == "" {
		cfg.Name = "Controller"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Controller{
		name:       cfg.Name,
		dispatcher: cfg.Dispatcher,
		binder:     cfg.Binder,
		eventBus:   cfg.EventBus,
		logger:     cfg.Logger.With("controller", cfg.Name),
		state:      state.StateUnbound,
	}

	if cfg.Context != nil {
		// Unbound -> Bound always succeeds on a fresh controller.
		_ = c.Bind(cfg.Context)
	}

	return c
}

// Name returns the controller name.
func (c *Controller) Name() string {
	return c.name
}

// State returns the binding state.
func (c *Controller) State() state.BindingState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Context returns the bound session context, or nil.
func (c *Controller) Context() *scene.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sceneCtx
}

// Bind assigns the session context. A controller binds exactly once.
func (c *Controller) Bind(sc *scene.Context) error {
	if sc == nil {
		return fmt.Errorf("bind %s: nil session context", c.name)
	}

	c.mu.Lock()
	old := c.state
	if !old.CanTransitionTo(state.StateBound) {
		c.mu.Unlock()
		return state.NewTransitionError(old, state.StateBound, "controller already bound")
	}
	c.sceneCtx = sc
	c.state = state.StateBound
	c.logger = c.logger.With("context_id", sc.ID())
	c.mu.Unlock()

	c.logger.Debug("Controller bound")
	c.publish(event.NewControllerStateChanged(sc.ID(), c.name, old, state.StateBound))
	return nil
}

// Create returns the view-model registered under identifier, creating,
// initializing and registering it when absent. Without an identifier a
// fresh UUID is used. Only the first identifier is considered.
func (c *Controller) Create(identifier ...string) (viewmodel.ViewModel, error) {
	sc, err := c.boundContext()
	if err != nil {
		return nil, err
	}
	if c.binder == nil {
		return nil, ErrNoBinder
	}

	id := ""
	if len(identifier) > 0 {
		id = identifier[0]
	}
	if id == "" {
		id = uuid.NewString()
	}

	if vm, ok := sc.Lookup(id); ok {
		return vm, nil
	}

	vm := c.CreateEmpty(id)
	if vm == nil {
		return nil, ErrNilViewModel
	}
	vm.SetOwner(c)
	c.binder.Initialize(vm)

	if err := sc.Register(id, vm); err != nil {
		return nil, fmt.Errorf("register view model: %w", err)
	}

	kind := fmt.Sprintf("%T", vm)
	c.logger.Debug("View model created", "identifier", id, "kind", kind)
	c.publish(event.NewViewModelCreated(sc.ID(), id, kind))
	return vm, nil
}

// CreateEmpty builds a view-model and assigns identifier without wiring or
// registering it. It returns nil when no binder is configured.
func (c *Controller) CreateEmpty(identifier string) viewmodel.ViewModel {
	if c.binder == nil {
		return nil
	}
	vm := c.binder.CreateEmpty()
	if vm == nil {
		return nil
	}
	vm.SetIdentifier(identifier)
	return vm
}

// ExecuteCommand forwards cmd and arg to the dispatcher.
func (c *Controller) ExecuteCommand(cmd command.Executable, arg any) error {
	if c.dispatcher == nil {
		return ErrNoDispatcher
	}
	return c.dispatcher.ExecuteCommand(cmd, arg)
}

// Execute forwards cmd to the dispatcher without an argument.
func (c *Controller) Execute(cmd command.Executable) error {
	return c.ExecuteCommand(cmd, nil)
}

// ExecuteWith forwards cmd with a typed argument.
func ExecuteWith[A any](c *Controller, cmd command.Executable, arg A) error {
	return c.ExecuteCommand(cmd, arg)
}

// SubscribeToCommand calls fn each time cmd has executed successfully.
func (c *Controller) SubscribeToCommand(cmd command.Executable, fn func()) *observer.Subscription {
	return cmd.OnExecuted(fn)
}

// Event relays message to the active session manager. When model is non-nil
// and the handler accepts arguments, model is passed first followed by the
// non-nil entries of args. Otherwise args are passed unchanged.
func (c *Controller) Event(model viewmodel.ViewModel, message string, args ...any) error {
	sc, err := c.boundContext()
	if err != nil {
		return err
	}

	mgr := sc.Manager()
	if mgr == nil {
		return ErrManagerNotSet
	}

	h, ok := mgr.Handler(message)
	if !ok {
		return scene.NewMissingHandlerError(message, mgr)
	}

	params := args
	if model != nil && h.AcceptsArguments() {
		params = make([]any, 0, len(args)+1)
		params = append(params, model)
		for _, arg := range args {
			if arg == nil {
				continue
			}
			if _, isView := arg.(viewmodel.View); isView {
				c.logger.Warn("View passed as event parameter, pass its view model instead",
					"message", message, "view", fmt.Sprintf("%T", arg))
			}
			params = append(params, arg)
		}
	}

	if err := h.Handle(params); err != nil {
		return err
	}

	c.publish(event.NewMessageRelayed(sc.ID(), message, fmt.Sprintf("%T", mgr)))
	return nil
}

// GameEvent relays message without a model.
func (c *Controller) GameEvent(message string, args ...any) error {
	return c.Event(nil, message, args...)
}

// ValidateManifest checks that the active manager handles every message mf
// requires.
func (c *Controller) ValidateManifest(mf *scene.Manifest) error {
	sc, err := c.boundContext()
	if err != nil {
		return err
	}
	return mf.Validate(sc.Manager())
}

// Snapshot captures the state of every snapshottable view-model.
func (c *Controller) Snapshot() ([]scene.Snapshot, error) {
	sc, err := c.boundContext()
	if err != nil {
		return nil, err
	}
	return sc.Snapshot(), nil
}

// Restore creates each snapshotted view-model (or reuses the registered one)
// and restores its state. Failures are collected and returned together.
func (c *Controller) Restore(snaps []scene.Snapshot) error {
	var errs []error
	for _, s := range snaps {
		vm, err := c.Create(s.Identifier)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Identifier, err))
			continue
		}
		if kind := fmt.Sprintf("%T", vm); s.Kind != "" && s.Kind != kind {
			errs = append(errs, fmt.Errorf("%s: %w: %s != %s", s.Identifier, ErrKindMismatch, s.Kind, kind))
			continue
		}
		restorer, ok := vm.(viewmodel.Snapshotter)
		if !ok {
			continue
		}
		if err := restorer.Restore(s.State); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Identifier, err))
		}
	}
	return errors.Join(errs...)
}

// Save writes the context snapshot to repo.
func (c *Controller) Save(ctx context.Context, repo scene.SnapshotRepository) error {
	snaps, err := c.Snapshot()
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, c.Context().ID(), snaps); err != nil {
		return fmt.Errorf("save context %s: %w", c.Context().ID(), err)
	}
	c.logger.Info("Context saved", "view_models", len(snaps))
	return nil
}

// Load reads the context snapshot from repo and restores it.
func (c *Controller) Load(ctx context.Context, repo scene.SnapshotRepository) error {
	sc, err := c.boundContext()
	if err != nil {
		return err
	}
	snaps, err := repo.Load(ctx, sc.ID())
	if err != nil {
		return fmt.Errorf("load context %s: %w", sc.ID(), err)
	}
	if err := c.Restore(snaps); err != nil {
		return err
	}
	c.logger.Info("Context loaded", "view_models", len(snaps))
	return nil
}

func (c *Controller) boundContext() (*scene.Context, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.state.CanCreateViewModels() || c.sceneCtx == nil {
		return nil, ErrUnbound
	}
	return c.sceneCtx, nil
}

func (c *Controller) publish(e event.Event) {
	if c.eventBus != nil {
		c.eventBus.Publish(e)
	}
}

var _ viewmodel.Owner = (*Controller)(nil)
