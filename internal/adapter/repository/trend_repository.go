package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// trendRepository reads and replaces sales_trends records directly through
// the driver, one database handle per store. The reconciler copies records
// verbatim between stores, so this path must not reshape documents.
type trendRepository struct {
	databases map[repository.StoreName]*mongo.Database
}

// NewTrendRepository creates the reconciler's view over both stores.
func NewTrendRepository(low, high *mongo.Database) repository.TrendRepository {
	return &trendRepository{
		databases: map[repository.StoreName]*mongo.Database{
			repository.StoreLow:  low,
			repository.StoreHigh: high,
		},
	}
}

func (r *trendRepository) collection(store repository.StoreName) *mongo.Collection {
	return r.databases[store].Collection(repository.CollectionSalesTrends)
}

func (r *trendRepository) Count(ctx context.Context, store repository.StoreName, periodType string) (int64, error) {
	count, err := r.collection(store).CountDocuments(ctx, bson.M{"period_type": periodType})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s trends on %s store: %w", periodType, store, err)
	}
	return count, nil
}

func (r *trendRepository) IDs(ctx context.Context, store repository.StoreName, periodType string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection(store).Find(ctx, bson.M{"period_type": periodType}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s trend ids on %s store: %w", periodType, store, err)
	}

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode trend ids on %s store: %w", store, err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *trendRepository) Get(ctx context.Context, store repository.StoreName, id string) (*model.SalesTrend, error) {
	var trend model.SalesTrend
	err := r.collection(store).FindOne(ctx, bson.M{"_id": id}).Decode(&trend)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load trend %s on %s store: %w", id, store, err)
	}
	return &trend, nil
}

func (r *trendRepository) Replace(ctx context.Context, store repository.StoreName, trend *model.SalesTrend) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection(store).ReplaceOne(ctx, bson.M{"_id": trend.ID}, trend, opts)
	if err != nil {
		return fmt.Errorf("failed to replace trend %s on %s store: %w", trend.ID, store, err)
	}
	return nil
}
