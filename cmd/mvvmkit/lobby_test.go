package main

import (
	"context"
	"errors"
	"testing"

	"mvvmkit-go/application"
	"mvvmkit-go/core/dispatch"
	"mvvmkit-go/domain/scene"
	"mvvmkit-go/infrastructure/repository"
	"mvvmkit-go/resources"
)

func newLobby(t *testing.T) (*application.Controller, *LobbyManager) {
	t.Helper()
	manager := NewLobbyManager(nil)
	controller := application.NewController(&application.ControllerConfig{
		Name:       "LobbyController",
		Context:    scene.NewContext("lobby", manager),
		Dispatcher: dispatch.Immediate{},
		Binder:     counterBinder{logger: manager.logger},
	})
	return controller, manager
}

func TestLobby_ManifestSatisfied(t *testing.T) {
	controller, _ := newLobby(t)

	loader := scene.NewLoader()
	if err := loader.LoadFromFS(resources.ManifestFiles, resources.ManifestDir); err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}
	if err := controller.ValidateManifest(loader.Get("Lobby")); err != nil {
		t.Errorf("ValidateManifest() error = %v", err)
	}
}

func TestLobby_CounterCommands(t *testing.T) {
	controller, _ := newLobby(t)

	vm, err := controller.Create("main")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	cv := vm.(*CounterViewModel)

	steps := []struct {
		command string
		arg     any
		want    int
		wantErr bool
	}{
		{"Increment", nil, 1, false},
		{"Increment", 5, 6, false},
		{"Reset", nil, 0, false},
		{"Increment", nil, 5, false}, // stored parameter from the previous call
		{"Rename", "", 5, true},
	}

	for _, s := range steps {
		if err := cv.Invoke(s.command, s.arg); (err != nil) != s.wantErr {
			t.Fatalf("Invoke(%s, %v) error = %v, wantErr %v", s.command, s.arg, err, s.wantErr)
		}
		if cv.Count != s.want {
			t.Fatalf("after %s(%v) Count = %d, want %d", s.command, s.arg, cv.Count, s.want)
		}
	}

	if err := cv.Invoke("Rename", "Score"); err != nil || cv.Label != "Score" {
		t.Errorf("Rename: label = %q, err = %v", cv.Label, err)
	}
	if !errors.Is(cv.Invoke("Rename", ""), errEmptyLabel) {
		t.Error("Rename(\"\") should return errEmptyLabel")
	}
}

func TestLobby_Relay(t *testing.T) {
	controller, manager := newLobby(t)
	vm, _ := controller.Create("main")

	if err := controller.GameEvent("Start"); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	if err := controller.GameEvent("Start"); err == nil {
		t.Error("second Start should fail")
	}
	if err := controller.Event(vm, "Selected"); err != nil {
		t.Fatalf("Selected error = %v", err)
	}
	if manager.selected != "main" {
		t.Errorf("selected = %q, want main", manager.selected)
	}
	if err := controller.Event(vm, "Announce", "hello"); err != nil {
		t.Fatalf("Announce error = %v", err)
	}
	if len(manager.log) != 1 {
		t.Errorf("log = %v, want one entry", manager.log)
	}
}

func TestLobby_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemorySnapshotRepository()

	saver, _ := newLobby(t)
	vm, _ := saver.Create("main")
	vm.(*CounterViewModel).Count = 4
	if err := saver.Save(ctx, repo); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loader, _ := newLobby(t)
	if err := loader.Load(ctx, repo); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	restored, _ := loader.Context().Lookup("main")
	if got := restored.(*CounterViewModel).Count; got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
}

func TestCounterViewModel_RestoreNumericKinds(t *testing.T) {
	tests := []struct {
		name    string
		count   any
		want    int
		wantErr bool
	}{
		{"int", 3, 3, false},
		{"int32", int32(4), 4, false},
		{"int64", int64(5), 5, false},
		{"float64", float64(6), 6, false},
		{"missing", nil, 0, false},
		{"string", "7", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := &CounterViewModel{}
			err := cv.Restore(map[string]any{"count": tt.count})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Restore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cv.Count != tt.want {
				t.Errorf("Count = %d, want %d", cv.Count, tt.want)
			}
		})
	}
}
