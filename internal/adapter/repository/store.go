package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	domainerrors "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/errors"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// MongoStore adapts one MongoDB database to the Store interface. Bulk
// operations run unordered so one bad document never blocks the rest of a
// chunk, and duplicate-key collisions between concurrent chunks are absorbed
// here rather than surfaced to the writer.
type MongoStore struct {
	name   repository.StoreName
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoStore creates a store adapter over one database handle.
func NewMongoStore(name repository.StoreName, db *mongo.Database, logger *zap.Logger) *MongoStore {
	return &MongoStore{name: name, db: db, logger: logger}
}

// Name returns the logical store name.
func (s *MongoStore) Name() repository.StoreName {
	return s.name
}

// Database exposes the underlying handle for direct-driver consumers.
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

// BulkUpsert replaces-or-inserts every document, matched on filterFields.
// Replacement keeps last-wins semantics for re-ingested keys and sidesteps
// the immutable _id restriction that $set would hit on keyed aggregates.
func (s *MongoStore) BulkUpsert(ctx context.Context, collection string, filterFields []string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		flat, err := toBsonMap(doc)
		if err != nil {
			return fmt.Errorf("failed to encode document for %s: %w", collection, err)
		}
		filter := bson.M{}
		for _, field := range filterFields {
			filter[field] = flat[field]
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(filter).
			SetReplacement(flat).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := s.db.Collection(collection).BulkWrite(ctx, models, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return s.wrap("bulk upsert", collection, err)
	}
	return nil
}

// BulkInsert inserts the documents unordered, tolerating duplicate keys so a
// replayed batch does not fail the chunk.
func (s *MongoStore) BulkInsert(ctx context.Context, collection string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}

	opts := options.InsertMany().SetOrdered(false)
	if _, err := s.db.Collection(collection).InsertMany(ctx, docs, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return s.wrap("bulk insert", collection, err)
	}
	return nil
}

// UpdateOneBy updates a single document matched by filter. The _id field is
// stripped from the update so full documents can be passed through.
func (s *MongoStore) UpdateOneBy(ctx context.Context, collection string, filter map[string]interface{}, doc interface{}, upsert bool) error {
	flat, err := toBsonMap(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document for %s: %w", collection, err)
	}
	delete(flat, "_id")

	opts := options.Update().SetUpsert(upsert)
	result, err := s.db.Collection(collection).UpdateOne(ctx, toFilter(filter), bson.M{"$set": flat}, opts)
	if err != nil {
		return s.wrap("update", collection, err)
	}
	if !upsert && result.MatchedCount == 0 {
		return fmt.Errorf("no document in %s matched %v", collection, filter)
	}
	return nil
}

// Count returns the number of documents matching the query.
func (s *MongoStore) Count(ctx context.Context, collection string, query map[string]interface{}) (int64, error) {
	count, err := s.db.Collection(collection).CountDocuments(ctx, toFilter(query))
	if err != nil {
		return 0, s.wrap("count", collection, err)
	}
	return count, nil
}

// Find decodes all documents matching the query into results.
func (s *MongoStore) Find(ctx context.Context, collection string, query map[string]interface{}, projection []string, results interface{}) error {
	opts := options.Find()
	if len(projection) > 0 {
		fields := bson.M{}
		for _, field := range projection {
			fields[field] = 1
		}
		opts.SetProjection(fields)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, toFilter(query), opts)
	if err != nil {
		return s.wrap("find", collection, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return s.wrap("decode", collection, err)
	}
	return nil
}

// wrap annotates a driver error with the store and operation, classifying
// timeouts and connection failures as transient for the writer's retry.
func (s *MongoStore) wrap(op, collection string, err error) error {
	wrapped := fmt.Errorf("failed to %s on %s store collection %s: %w", op, s.name, collection, err)
	if isTransient(err) {
		return &domainerrors.TransientStoreError{Err: wrapped}
	}
	return wrapped
}

func isTransient(err error) bool {
	return mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, context.DeadlineExceeded)
}

// toBsonMap round-trips a document through the bson codec so filter fields
// can be read by their wire names regardless of the Go type passed in.
func toBsonMap(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var flat bson.M
	if err := bson.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func toFilter(query map[string]interface{}) bson.M {
	filter := bson.M{}
	for key, value := range query {
		filter[key] = value
	}
	return filter
}
