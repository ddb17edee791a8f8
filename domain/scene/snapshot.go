package scene

import "context"

// Snapshot is the persisted state of one view-model.
type Snapshot struct {
	Identifier string
	Kind       string
	State      map[string]any
}

// SnapshotRepository persists context snapshots.
type SnapshotRepository interface {
	// Save replaces the stored snapshots of contextID.
	Save(ctx context.Context, contextID string, snaps []Snapshot) error

	// Load returns the stored snapshots of contextID.
	// Returns an empty slice if nothing was saved.
	Load(ctx context.Context, contextID string) ([]Snapshot, error)
}
