package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mvvmkit-go/domain/scene"
	"mvvmkit-go/infrastructure/logging"
)

// contextDocument is the MongoDB document structure for one saved context.
type contextDocument struct {
	ContextID  string             `bson:"_id"`
	ViewModels []snapshotDocument `bson:"view_models"`
	SavedAt    time.Time          `bson:"saved_at"`
}

// snapshotDocument is the MongoDB document structure for one view-model.
type snapshotDocument struct {
	Identifier string `bson:"identifier"`
	Kind       string `bson:"kind"`
	State      bson.M `bson:"state,omitempty"`
}

// MongoSnapshotRepository implements scene.SnapshotRepository using MongoDB.
// Each context is stored as a single document keyed by context ID.
type MongoSnapshotRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoSnapshotRepository creates a new MongoDB-based snapshot repository.
func NewMongoSnapshotRepository(db *MongoDB, logger *slog.Logger) *MongoSnapshotRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoSnapshotRepository{
		collection: db.Collection("context_snapshot"),
		logger:     logger,
	}
}

// Save replaces the stored snapshots of contextID.
func (r *MongoSnapshotRepository) Save(ctx context.Context, contextID string, snaps []scene.Snapshot) error {
	doc := snapshotsToDocument(contextID, snaps)
	doc.SavedAt = time.Now().UTC()

	filter := bson.M{"_id": contextID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("failed to save context snapshot: %w", err)
	}

	r.loggerFor(ctx).Info("Context snapshot saved", "context_id", contextID, "view_models", len(snaps))
	return nil
}

// Load returns the stored snapshots of contextID.
func (r *MongoSnapshotRepository) Load(ctx context.Context, contextID string) ([]scene.Snapshot, error) {
	var doc contextDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": contextID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return []scene.Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to load context snapshot: %w", err)
	}

	return documentToSnapshots(&doc), nil
}

// Delete removes the stored snapshots of contextID.
func (r *MongoSnapshotRepository) Delete(ctx context.Context, contextID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": contextID}); err != nil {
		return fmt.Errorf("failed to delete context snapshot: %w", err)
	}
	return nil
}

// loggerFor prefers the logger carried by ctx.
func (r *MongoSnapshotRepository) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := logging.FromContext(ctx); ok {
		return logger
	}
	return r.logger
}

func snapshotsToDocument(contextID string, snaps []scene.Snapshot) *contextDocument {
	doc := &contextDocument{
		ContextID:  contextID,
		ViewModels: make([]snapshotDocument, len(snaps)),
	}
	for i, s := range snaps {
		doc.ViewModels[i] = snapshotDocument{
			Identifier: s.Identifier,
			Kind:       s.Kind,
			State:      bson.M(s.State),
		}
	}
	return doc
}

func documentToSnapshots(doc *contextDocument) []scene.Snapshot {
	snaps := make([]scene.Snapshot, len(doc.ViewModels))
	for i, d := range doc.ViewModels {
		snaps[i] = scene.Snapshot{
			Identifier: d.Identifier,
			Kind:       d.Kind,
			State:      map[string]any(d.State),
		}
	}
	return snaps
}
