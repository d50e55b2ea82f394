package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store against MongoDB. Every operation runs inside
// its own connection scope: connect, resolve the collection, run, disconnect.
// No connection outlives the operation or is shared between requests.
type MongoStore struct {
	uri      string
	database string
	timeout  time.Duration
}

// NewMongoStore creates a MongoStore. timeout bounds each operation end to
// end, connect included; non-positive values fall back to 10 seconds.
func NewMongoStore(uri, database string, timeout time.Duration) *MongoStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MongoStore{
		uri:      uri,
		database: database,
		timeout:  timeout,
	}
}

// withCollection opens a connection, hands the named collection to fn, and
// disconnects on every exit path, fn's outcome included.
func (s *MongoStore) withCollection(ctx context.Context, name string, fn func(ctx context.Context, col *mongo.Collection) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		// Disconnect must not inherit a context fn may have exhausted.
		dctx, dcancel := context.WithTimeout(context.Background(), s.timeout)
		defer dcancel()
		if derr := client.Disconnect(dctx); derr != nil {
			log.Printf("docstore: disconnect failed: %v", derr)
		}
	}()

	return fn(ctx, client.Database(s.database).Collection(name))
}

func (s *MongoStore) List(ctx context.Context, collection string, window PageWindow) ([]Document, error) {
	docs := []Document{}

	err := s.withCollection(ctx, collection, func(ctx context.Context, col *mongo.Collection) error {
		opts := options.Find().SetSkip(window.Offset).SetLimit(window.Limit)
		cur, err := col.Find(ctx, bson.D{}, opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc Document
	err = s.withCollection(ctx, collection, func(ctx context.Context, col *mongo.Collection) error {
		res := col.FindOne(ctx, bson.M{"_id": oid})
		if err := res.Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc Document) (InsertResult, error) {
	var result InsertResult

	err := s.withCollection(ctx, collection, func(ctx context.Context, col *mongo.Collection) error {
		res, err := col.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			result.InsertedID = oid.Hex()
		} else {
			result.InsertedID = fmt.Sprintf("%v", res.InsertedID)
		}
		return nil
	})
	return result, err
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields Document) (UpdateResult, error) {
	var result UpdateResult

	oid, err := parseObjectID(id)
	if err != nil {
		return result, err
	}

	err = s.withCollection(ctx, collection, func(ctx context.Context, col *mongo.Collection) error {
		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
		if err != nil {
			return err
		}
		result.MatchedCount = res.MatchedCount
		result.ModifiedCount = res.ModifiedCount
		return nil
	})
	return result, err
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) (DeleteResult, error) {
	var result DeleteResult

	oid, err := parseObjectID(id)
	if err != nil {
		return result, err
	}

	err = s.withCollection(ctx, collection, func(ctx context.Context, col *mongo.Collection) error {
		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		result.DeletedCount = res.DeletedCount
		return nil
	})
	return result, err
}

// parseObjectID rejects malformed identifiers before any connection is made.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
