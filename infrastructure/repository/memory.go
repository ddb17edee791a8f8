package repository

import (
	"context"
	"maps"
	"sync"

	"mvvmkit-go/domain/scene"
)

// MemorySnapshotRepository keeps snapshots in process. It backs tests and
// runs without a database.
type MemorySnapshotRepository struct {
	contexts map[string][]scene.Snapshot
	mu       sync.RWMutex
}

// NewMemorySnapshotRepository creates an empty in-memory repository.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{
		contexts: make(map[string][]scene.Snapshot),
	}
}

// Save replaces the stored snapshots of contextID.
func (r *MemorySnapshotRepository) Save(_ context.Context, contextID string, snaps []scene.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts[contextID] = cloneSnapshots(snaps)
	return nil
}

// Load returns the stored snapshots of contextID.
func (r *MemorySnapshotRepository) Load(_ context.Context, contextID string) ([]scene.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneSnapshots(r.contexts[contextID]), nil
}

// Delete removes the stored snapshots of contextID.
func (r *MemorySnapshotRepository) Delete(_ context.Context, contextID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contexts, contextID)
	return nil
}

func cloneSnapshots(snaps []scene.Snapshot) []scene.Snapshot {
	out := make([]scene.Snapshot, len(snaps))
	for i, s := range snaps {
		out[i] = scene.Snapshot{
			Identifier: s.Identifier,
			Kind:       s.Kind,
			State:      maps.Clone(s.State),
		}
	}
	return out
}

var (
	_ scene.SnapshotRepository = (*MemorySnapshotRepository)(nil)
	_ scene.SnapshotRepository = (*MongoSnapshotRepository)(nil)
)
