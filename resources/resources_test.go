package resources

import (
	"testing"

	"mvvmkit-go/domain/scene"
)

func TestManifestFiles(t *testing.T) {
	loader := scene.NewLoader()
	if err := loader.LoadFromFS(ManifestFiles, ManifestDir); err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}

	lobby := loader.Get("Lobby")
	if lobby == nil {
		t.Fatal("Lobby manifest not embedded")
	}
	if len(lobby.Messages) != 3 {
		t.Errorf("Messages = %v, want 3 entries", lobby.Messages)
	}
}
