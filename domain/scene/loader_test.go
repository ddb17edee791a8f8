package scene

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestLoader_LoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"manifests/level.yaml": {Data: []byte("manager: level\nmessages:\n  - LoadLevel\n  - Quit\n")},
		"manifests/menu.yml":   {Data: []byte("manager: menu\nmessages: [Open]\n")},
		"manifests/notes.txt":  {Data: []byte("ignored")},
	}

	loader := NewLoader()
	if err := loader.LoadFromFS(fsys, "manifests"); err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}

	if loader.Count() != 2 {
		t.Errorf("Count() = %d, want 2", loader.Count())
	}

	level := loader.Get("level")
	if level == nil {
		t.Fatal("level manifest not loaded")
	}
	if len(level.Messages) != 2 || level.Messages[0] != "LoadLevel" {
		t.Errorf("Messages = %v", level.Messages)
	}
	if loader.Get("unknown") != nil {
		t.Error("Get should return nil for unknown manifests")
	}
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing dir", fstest.MapFS{}},
		{"bad yaml", fstest.MapFS{"m/a.yaml": {Data: []byte("manager: [unclosed")}}},
		{"no manager", fstest.MapFS{"m/a.yaml": {Data: []byte("messages: [A]\n")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewLoader().LoadFromFS(tt.fsys, "m"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestManifest_Validate(t *testing.T) {
	table := NewHandlerTable().On("LoadLevel", ActionFunc(func() error { return nil }))
	mf := &Manifest{Manager: "level", Messages: []string{"LoadLevel", "Quit", "Pause"}}

	err := mf.Validate(table)
	if !errors.Is(err, ErrHandlerNotFound) {
		t.Fatalf("error = %v, want ErrHandlerNotFound", err)
	}

	var missing *MissingHandlerError
	if !errors.As(err, &missing) || missing.Message != "Quit" {
		t.Errorf("first missing = %+v, want Quit", missing)
	}

	table.On("Quit", ActionFunc(func() error { return nil })).
		On("Pause", ActionFunc(func() error { return nil }))
	if err := mf.Validate(table); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	if err := mf.Validate(nil); err == nil {
		t.Error("expected error for nil manager")
	}
}
