package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/schreier/pkg/errors"
)

// MongoStore persists catalog entries in a MongoDB collection, for server
// deployments where the catalog outlives the process.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the "groups" collection
// of the given database. A unique index on the name field enforces name
// uniqueness across instances.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connecting to catalog store")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "pinging catalog store")
	}

	collection := client.Database(database).Collection("groups")
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "creating name index")
	}

	return &MongoStore{client: client, collection: collection}, nil
}

// Put inserts or replaces an entry by ID.
func (s *MongoStore) Put(ctx context.Context, e Entry) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": e.ID}, e, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "storing entry %s", e.ID)
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return Entry{}, errors.New(errors.ErrCodeNotFound, "no catalog entry with id %s", id)
	}
	if err != nil {
		return Entry{}, errors.Wrap(errors.ErrCodeInternal, err, "loading entry %s", id)
	}
	return e, nil
}

// GetByName retrieves an entry by name.
func (s *MongoStore) GetByName(ctx context.Context, name string) (Entry, error) {
	var e Entry
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return Entry{}, errors.New(errors.ErrCodeNotFound, "no catalog entry named %q", name)
	}
	if err != nil {
		return Entry{}, errors.Wrap(errors.ErrCodeInternal, err, "loading entry %q", name)
	}
	return e, nil
}

// List returns all entries ordered by name.
func (s *MongoStore) List(ctx context.Context) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "listing entries")
	}
	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding entries")
	}
	return entries, nil
}

// Delete removes an entry by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "deleting entry %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "no catalog entry with id %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
