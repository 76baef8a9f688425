package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// EnsureIndexes creates the unique keys both stores rely on. Creation is
// idempotent; an existing identical index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		repository.CollectionCustomers: {
			{Keys: bson.D{{Key: "customer_id", Value: 1}}, Options: unique},
		},
		repository.CollectionProducts: {
			{Keys: bson.D{{Key: "product_id", Value: 1}}, Options: unique},
		},
		repository.CollectionOrders: {
			{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: unique},
		},
		repository.CollectionSales: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		},
		repository.CollectionSalesTrends: {
			{Keys: bson.D{{Key: "period_type", Value: 1}, {Key: "period_value", Value: 1}}, Options: unique},
		},
		repository.CollectionRawDataUploads: {
			{Keys: bson.D{{Key: "file_name", Value: 1}}, Options: unique},
		},
		// Review ids are deliberately non-unique; reviews are insert-only
		// and a replayed batch appends rather than overwrites.
		repository.CollectionLowReviews: {
			{Keys: bson.D{{Key: "id", Value: 1}}},
		},
		repository.CollectionHighReviews: {
			{Keys: bson.D{{Key: "id", Value: 1}}},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
