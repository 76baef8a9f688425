package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// Materializer derives the seven aggregate families from the ingested frame
// and writes them, replicated, to both stores. It runs once per upload after
// all chunk workers have joined, so aggregates always reflect the complete
// batch. The frame, not the persisted store, is the source: the aggregates
// are cheap to recompute and the frame is authoritative for the batch.
type Materializer struct {
	stores repository.StoreRegistry
	margin float64
	logger *zap.Logger
}

// NewMaterializer creates a new analytics materializer.
func NewMaterializer(stores repository.StoreRegistry, profitMargin float64, logger *zap.Logger) *Materializer {
	if profitMargin <= 0 {
		profitMargin = 0.3
	}
	return &Materializer{stores: stores, margin: profitMargin, logger: logger}
}

// Materialize rebuilds every aggregate family from the frame rows. An empty
// frame writes nothing and is not an error. A single unreachable store is
// tolerated (the reconciler heals the trend family and the next ingest
// rebuilds the rest); losing both stores fails the materialization.
func (m *Materializer) Materialize(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	trends := BuildSalesTrends(rows)
	products := BuildProductPerformance(rows)
	categories := BuildCategoryPerformance(rows, m.margin)
	demographics := BuildDemographics(rows)
	geography := BuildGeographicalInsights(rows)
	behavior := BuildCustomerBehavior(rows)
	predictions := BuildPredictions(rows, trends, products)

	families := []struct {
		collection   string
		filterFields []string
		docs         []interface{}
	}{
		{repository.CollectionSalesTrends, []string{"period_type", "period_value"}, toDocs(trends)},
		{repository.CollectionProductPerformance, []string{"product_id"}, toDocs(products)},
		{repository.CollectionCategoryPerformance, []string{"category"}, toDocs(categories)},
		{repository.CollectionDemographics, []string{"age_group", "gender"}, toDocs(demographics)},
		{repository.CollectionGeographicalInsight, []string{"city"}, toDocs(geography)},
		{repository.CollectionCustomerBehavior, []string{"customer_id"}, toDocs(behavior)},
		{repository.CollectionPredictions, []string{"prediction_type", "prediction_period"}, toDocs(predictions)},
	}

	failures := 0
	for _, store := range m.stores.Both() {
		storeFailed := false
		for _, family := range families {
			if len(family.docs) == 0 {
				continue
			}
			if err := store.BulkUpsert(ctx, family.collection, family.filterFields, family.docs); err != nil {
				m.logger.Error("failed to materialize aggregate family",
					zap.String("store", string(store.Name())),
					zap.String("collection", family.collection),
					zap.Error(err))
				storeFailed = true
			}
		}
		if storeFailed {
			failures++
		}
	}
	if failures == len(m.stores.Both()) {
		return fmt.Errorf("failed to materialize aggregates: no store accepted writes")
	}

	m.logger.Info("materialized aggregate families",
		zap.Int("sales_trends", len(trends)),
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
		zap.Int("demographics", len(demographics)),
		zap.Int("cities", len(geography)),
		zap.Int("customers", len(behavior)),
		zap.Int("predictions", len(predictions)))

	return nil
}
