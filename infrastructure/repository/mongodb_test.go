package repository

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"mvvmkit-go/domain/scene"
	"mvvmkit-go/infrastructure/config"
	"mvvmkit-go/infrastructure/logging"
)

func TestDefaultMongoDBConfig(t *testing.T) {
	config := DefaultMongoDBConfig()

	if config == nil {
		t.Fatal("DefaultMongoDBConfig returned nil")
	}

	if config.URI != "mongodb://localhost:27017" {
		t.Errorf("URI = %v, want mongodb://localhost:27017", config.URI)
	}

	if config.Database != "mvvmkit" {
		t.Errorf("Database = %v, want mvvmkit", config.Database)
	}

	if config.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", config.ConnectTimeout)
	}

	if config.PingTimeout != 5*time.Second {
		t.Errorf("PingTimeout = %v, want 5s", config.PingTimeout)
	}
}

func TestSnapshotDocument_Conversion(t *testing.T) {
	snaps := []scene.Snapshot{
		{Identifier: "player", Kind: "*game.PlayerViewModel", State: map[string]any{"hp": 10}},
		{Identifier: "hud", Kind: "*game.HUDViewModel"},
	}

	doc := snapshotsToDocument("level-1", snaps)
	if doc.ContextID != "level-1" {
		t.Errorf("ContextID = %v, want level-1", doc.ContextID)
	}
	if len(doc.ViewModels) != 2 {
		t.Fatalf("len(ViewModels) = %d, want 2", len(doc.ViewModels))
	}
	if doc.ViewModels[0].State["hp"] != 10 {
		t.Errorf("State[hp] = %v, want 10", doc.ViewModels[0].State["hp"])
	}

	back := documentToSnapshots(doc)
	if len(back) != 2 || back[0].Identifier != "player" || back[1].Kind != "*game.HUDViewModel" {
		t.Errorf("round trip = %+v", back)
	}
}

func TestMemorySnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySnapshotRepository()

	empty, err := repo.Load(ctx, "none")
	if err != nil || len(empty) != 0 {
		t.Fatalf("Load(none) = %v, %v", empty, err)
	}

	state := map[string]any{"score": 3}
	if err := repo.Save(ctx, "c1", []scene.Snapshot{{Identifier: "p", State: state}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	state["score"] = 99

	got, err := repo.Load(ctx, "c1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].State["score"] != 3 {
		t.Errorf("Load() = %+v", got)
	}

	_ = repo.Delete(ctx, "c1")
	got, _ = repo.Load(ctx, "c1")
	if len(got) != 0 {
		t.Errorf("Load after Delete = %+v", got)
	}
}

func TestMongoDBConfigFrom(t *testing.T) {
	tests := []struct {
		name string
		in   config.MongoConfig
		want MongoDBConfig
	}{
		{
			name: "zero falls back to defaults",
			in:   config.MongoConfig{},
			want: *DefaultMongoDBConfig(),
		},
		{
			name: "overrides",
			in: config.MongoConfig{
				URI:            "mongodb://db:27017",
				Database:       "scenes",
				ConnectTimeout: time.Second,
				PingTimeout:    2 * time.Second,
			},
			want: MongoDBConfig{
				URI:            "mongodb://db:27017",
				Database:       "scenes",
				ConnectTimeout: time.Second,
				PingTimeout:    2 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MongoDBConfigFrom(tt.in)
			if *got != tt.want {
				t.Errorf("MongoDBConfigFrom() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestMongoSnapshotRepository_LoggerFor(t *testing.T) {
	base := slog.Default().With("repo", "snapshots")
	r := &MongoSnapshotRepository{logger: base}

	if r.loggerFor(context.Background()) != base {
		t.Error("loggerFor should fall back to the repository logger")
	}

	scoped := base.With("action", "save")
	ctx := logging.With(context.Background(), scoped)
	if r.loggerFor(ctx) != scoped {
		t.Error("loggerFor should prefer the context logger")
	}
}
