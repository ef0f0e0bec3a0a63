package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on MongoDB. Each leaf collection name maps to
// one Mongo collection. Documents are keyed by the "id" field; nested
// documents also carry "parent", the path of the document that owns them.
type MongoStore struct {
	db      *mongo.Database
	timeout time.Duration
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db, timeout: 5 * time.Second}
}

type mongoDocKey struct {
	ID string `bson:"id"`
}

// mongoFilter scopes a filter to the documents of one (possibly nested) collection.
func mongoFilter(collection string, extra bson.M) (string, bson.M) {
	parent, name := splitCollection(collection)
	filter := bson.M{}
	for k, v := range extra {
		filter[k] = v
	}
	if parent != "" {
		filter["parent"] = parent
	}
	return name, filter
}

func (s *MongoStore) FindByField(ctx context.Context, collection, field, value string) ([]DocRef, error) {
	if !validCollection(collection) {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}
	name, filter := mongoFilter(collection, bson.M{field: value})
	return s.find(ctx, collection, name, filter)
}

func (s *MongoStore) ListDocuments(ctx context.Context, collection string) ([]DocRef, error) {
	if !validCollection(collection) {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}
	name, filter := mongoFilter(collection, nil)
	return s.find(ctx, collection, name, filter)
}

func (s *MongoStore) find(ctx context.Context, collection, name string, filter bson.M) ([]DocRef, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1}).SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := s.db.Collection(name).Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongo("find in "+collection, err)
	}
	defer cursor.Close(ctx)

	var refs []DocRef
	for cursor.Next(ctx) {
		var key mongoDocKey
		if err := cursor.Decode(&key); err != nil {
			return nil, fmt.Errorf("failed to decode document key in %s: %w", collection, err)
		}
		refs = append(refs, DocRef{Collection: collection, ID: key.ID})
	}
	if err := cursor.Err(); err != nil {
		return nil, classifyMongo("iterate "+collection, err)
	}
	return refs, nil
}

func (s *MongoStore) Delete(ctx context.Context, ref DocRef) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	name, filter := mongoFilter(ref.Collection, bson.M{"id": ref.ID})
	if _, err := s.db.Collection(name).DeleteOne(ctx, filter); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return classifyMongo("delete "+ref.Path(), err)
	}
	return nil
}

// Mongo server error codes for authorization failures.
const (
	mongoUnauthorized         = 13
	mongoAuthenticationFailed = 18
)

func classifyMongo(op string, err error) error {
	var kind error
	var cmdErr mongo.CommandError
	switch {
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = ErrUnavailable
	case errors.As(err, &cmdErr) && (cmdErr.Code == mongoUnauthorized || cmdErr.Code == mongoAuthenticationFailed):
		kind = ErrPermissionDenied
	default:
		kind = ErrUnknown
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
