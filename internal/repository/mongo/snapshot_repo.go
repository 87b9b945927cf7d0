// internal/repository/mongo/snapshot_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultSnapshotCollectionName = "snapshots"

// snapshotDocument is the stored shape. Payload keeps the JSON text verbatim so
// round trips are byte-exact.
type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoSnapshotRepository implements repository.SnapshotRepository
type mongoSnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoSnapshotRepository creates a snapshot repository on db.collection.
// An empty collection name uses "snapshots".
func NewMongoSnapshotRepository(db *mongo.Database, collection string) repository.SnapshotRepository {
	if collection == "" {
		collection = defaultSnapshotCollectionName
	}
	return &mongoSnapshotRepository{
		collection: db.Collection(collection),
	}
}

// Load returns the payload stored under key.
func (r *mongoSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDocument
	filter := bson.M{"_id": key}
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return []byte(doc.Payload), nil
}

// Save upserts the payload under key.
func (r *mongoSnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	filter := bson.M{"_id": key}
	update := bson.M{
		"$set": bson.M{
			"payload":   string(payload),
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// Delete removes every given key in one round trip.
func (r *mongoSnapshotRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": keys}}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return err
	}
	return nil
}

// EnsureSnapshotIndexes creates necessary indexes. Call during startup.
func EnsureSnapshotIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Lets operators find stale sessions.
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
