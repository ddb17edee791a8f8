package presentation

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"mvvmkit-go/application"
	"mvvmkit-go/core/command"
	"mvvmkit-go/core/dispatch"
	"mvvmkit-go/core/event"
	"mvvmkit-go/core/eventbus"
	"mvvmkit-go/domain/scene"
	"mvvmkit-go/domain/viewmodel"
)

type pingViewModel struct {
	viewmodel.Base
	pings atomic.Int32
}

func newPingController(bus eventbus.EventBus, mgr scene.Manager) *application.Controller {
	return application.NewController(&application.ControllerConfig{
		Name:       "PingController",
		Context:    scene.NewContext("ui", mgr),
		Dispatcher: dispatch.Chain(dispatch.Immediate{}, dispatch.WithEvents(bus, "ui")),
		EventBus:   bus,
		Binder: application.FuncBinder{
			New: func() viewmodel.ViewModel { return &pingViewModel{} },
			Init: func(vm viewmodel.ViewModel) {
				pv := vm.(*pingViewModel)
				pv.BindCommand("Ping", command.NewArgument(func(s string) error {
					if s == "fail" {
						return errors.New("ping failed")
					}
					pv.pings.Add(1)
					return nil
				}).Named("Ping"))
			},
		},
	})
}

func TestUICallbacks_Nil(t *testing.T) {
	callbacks := &UICallbacks{}

	if callbacks.OnCommandDispatched != nil {
		t.Error("OnCommandDispatched should be nil by default")
	}
	if callbacks.OnViewModelCreated != nil {
		t.Error("OnViewModelCreated should be nil by default")
	}
}

func TestUIEventBridge_HandleEventNilCallbacks(t *testing.T) {
	b := NewUIEventBridge(&BridgeConfig{})
	b.SetCallbacks(nil)

	// Must not panic.
	b.handleEvent(event.NewViewModelCreated("ui", "a", "*T"))
	b.SetCallbacks(&UICallbacks{})
	b.handleEvent(event.NewMessageRelayed("ui", "Start", "*M"))
}

func TestUIEventBridge_RoutesEvents(t *testing.T) {
	bus := eventbus.New(10, nil)
	defer bus.Close()

	var created, dispatched, failed, relayed atomic.Int32
	done := make(chan struct{}, 8)
	mark := func(n *atomic.Int32) {
		n.Add(1)
		done <- struct{}{}
	}

	table := scene.NewHandlerTable().On("Start", scene.ActionFunc(func() error { return nil }))
	controller := newPingController(bus, table)

	bridge := NewUIEventBridge(&BridgeConfig{
		Controller: controller,
		EventBus:   bus,
		ContextID:  "ui",
	})
	defer bridge.Close()

	bridge.SetCallbacks(&UICallbacks{
		OnViewModelCreated:  func(_, _, _ string) { mark(&created) },
		OnCommandDispatched: func(_, _ string, _ time.Duration) { mark(&dispatched) },
		OnCommandFailed:     func(_, _ string, _ error) { mark(&failed) },
		OnMessageRelayed:    func(_, _, _ string) { mark(&relayed) },
	})

	id, err := bridge.CreateViewModel("p1")
	if err != nil || id != "p1" {
		t.Fatalf("CreateViewModel() = %q, %v", id, err)
	}

	vm, _ := controller.Context().Lookup("p1")
	cmd, _ := vm.(*pingViewModel).CommandFor("Ping")
	if err := bridge.ExecuteCommand(cmd, "ok"); err != nil {
		t.Fatalf("ExecuteCommand() error = %v", err)
	}
	if err := bridge.ExecuteCommand(cmd, "fail"); err == nil {
		t.Fatal("ExecuteCommand(fail) should return an error")
	}
	if err := bridge.Relay("", "Start"); err != nil {
		t.Fatalf("Relay() error = %v", err)
	}

	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d callbacks", i)
		}
	}

	if created.Load() != 1 || dispatched.Load() != 1 || failed.Load() != 1 || relayed.Load() != 1 {
		t.Errorf("created=%d dispatched=%d failed=%d relayed=%d, want 1 each",
			created.Load(), dispatched.Load(), failed.Load(), relayed.Load())
	}
}

func TestUIEventBridge_RelayWithModel(t *testing.T) {
	var got []any
	table := scene.NewHandlerTable().On("Select", scene.HandlerFunc(func(args ...any) error {
		got = args
		return nil
	}))
	controller := newPingController(nil, table)
	bridge := NewUIEventBridge(&BridgeConfig{Controller: controller})

	if _, err := bridge.CreateViewModel("p1"); err != nil {
		t.Fatalf("CreateViewModel() error = %v", err)
	}
	if err := bridge.Relay("p1", "Select", 3); err != nil {
		t.Fatalf("Relay() error = %v", err)
	}

	vm, _ := controller.Context().Lookup("p1")
	if len(got) != 2 || got[0] != vm || got[1] != 3 {
		t.Errorf("args = %v, want [p1 3]", got)
	}
}
