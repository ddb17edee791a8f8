package viewmodel

import (
	"testing"

	"mvvmkit-go/core/command"
)

type testViewModel struct {
	Base
}

type recordingOwner struct {
	calls int
	last  any
}

func (o *recordingOwner) ExecuteCommand(cmd command.Executable, arg any) error {
	o.calls++
	o.last = arg
	return cmd.ExecuteParameter(arg)
}

func TestBase_Identity(t *testing.T) {
	var vm ViewModel = &testViewModel{}
	vm.SetIdentifier("player-1")

	if vm.Identifier() != "player-1" {
		t.Errorf("Identifier() = %v, want player-1", vm.Identifier())
	}
	if vm.Owner() != nil {
		t.Error("Owner() should be nil by default")
	}

	owner := &recordingOwner{}
	vm.SetOwner(owner)
	if vm.Owner() != owner {
		t.Error("Owner not set correctly")
	}
}

func TestBase_CommandFor(t *testing.T) {
	vm := &testViewModel{}
	vm.SetIdentifier("hud")

	if _, err := vm.CommandFor("missing"); err == nil {
		t.Error("expected error for unbound command")
	}

	jump := command.NewArgument(func(int) error { return nil })
	vm.BindCommand("jump", jump)
	vm.BindCommand("fire", command.NewArgument(func(int) error { return nil }))

	got, err := vm.CommandFor("jump")
	if err != nil {
		t.Fatalf("CommandFor() error = %v", err)
	}
	if got != jump {
		t.Error("CommandFor returned a different command")
	}

	names := vm.CommandNames()
	if len(names) != 2 || names[0] != "fire" || names[1] != "jump" {
		t.Errorf("CommandNames() = %v, want [fire jump]", names)
	}
}

func TestBase_InvokeWithoutOwner(t *testing.T) {
	vm := &testViewModel{}
	var got int
	vm.BindCommand("set", command.NewArgument(func(v int) error { got = v; return nil }))

	if err := vm.Invoke("set", 4); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got != 4 {
		t.Errorf("got = %d, want 4", got)
	}
}

func TestBase_InvokeThroughOwner(t *testing.T) {
	vm := &testViewModel{}
	owner := &recordingOwner{}
	vm.SetOwner(owner)
	vm.BindCommand("noop", command.NewArgument(func(string) error { return nil }))

	if err := vm.Invoke("noop", "x"); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if owner.calls != 1 || owner.last != "x" {
		t.Errorf("owner calls = %d last = %v", owner.calls, owner.last)
	}

	if err := vm.Invoke("missing", nil); err == nil {
		t.Error("expected error for unknown command")
	}
}
