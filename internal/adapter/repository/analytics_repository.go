package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/dto"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// analyticsRepository serves the materialized families straight from the
// high store's database. The reconciler keeps the high store authoritative,
// so a single handle is enough for all reads.
type analyticsRepository struct {
	db *mongo.Database
}

// NewAnalyticsRepository creates the read-side repository over the high
// store's database handle.
func NewAnalyticsRepository(db *mongo.Database) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) ListSalesTrends(ctx context.Context, filter dto.TrendFilter) ([]model.SalesTrend, error) {
	query := bson.M{}
	if filter.PeriodType != "" {
		query["period_type"] = filter.PeriodType
	}
	if filter.PeriodValue != "" {
		query["period_value"] = filter.PeriodValue
	}
	var trends []model.SalesTrend
	err := r.list(ctx, repository.CollectionSalesTrends, query, bson.D{{Key: "period_value", Value: 1}}, &trends)
	return trends, err
}

func (r *analyticsRepository) ListProductPerformance(ctx context.Context, filter dto.ProductPerformanceFilter) ([]model.ProductPerformance, error) {
	query := bson.M{}
	if filter.ProductID != nil {
		query["product_id"] = *filter.ProductID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	var products []model.ProductPerformance
	err := r.list(ctx, repository.CollectionProductPerformance, query, bson.D{{Key: "product_id", Value: 1}}, &products)
	return products, err
}

func (r *analyticsRepository) ListCategoryPerformance(ctx context.Context, filter dto.CategoryPerformanceFilter) ([]model.CategoryPerformance, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	var categories []model.CategoryPerformance
	err := r.list(ctx, repository.CollectionCategoryPerformance, query, bson.D{{Key: "category", Value: 1}}, &categories)
	return categories, err
}

func (r *analyticsRepository) ListDemographics(ctx context.Context, filter dto.DemographicsFilter) ([]model.Demographics, error) {
	query := bson.M{}
	if filter.AgeGroup != "" {
		query["age_group"] = filter.AgeGroup
	}
	if filter.Gender != "" {
		query["gender"] = filter.Gender
	}
	var segments []model.Demographics
	err := r.list(ctx, repository.CollectionDemographics, query, bson.D{{Key: "age_group", Value: 1}, {Key: "gender", Value: 1}}, &segments)
	return segments, err
}

func (r *analyticsRepository) ListGeographicalInsights(ctx context.Context, filter dto.GeographyFilter) ([]model.GeographicalInsight, error) {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = filter.City
	}
	var insights []model.GeographicalInsight
	err := r.list(ctx, repository.CollectionGeographicalInsight, query, bson.D{{Key: "city", Value: 1}}, &insights)
	return insights, err
}

func (r *analyticsRepository) ListCustomerBehavior(ctx context.Context, filter dto.BehaviorFilter) ([]model.CustomerBehavior, error) {
	query := bson.M{}
	if filter.CustomerID != nil {
		query["customer_id"] = *filter.CustomerID
	}
	if filter.Segment != "" {
		query["segment"] = filter.Segment
	}
	var behaviors []model.CustomerBehavior
	err := r.list(ctx, repository.CollectionCustomerBehavior, query, bson.D{{Key: "customer_id", Value: 1}}, &behaviors)
	return behaviors, err
}

func (r *analyticsRepository) ListPredictions(ctx context.Context, filter dto.PredictionFilter) ([]model.Prediction, error) {
	query := bson.M{}
	if filter.PredictionType != "" {
		query["prediction_type"] = filter.PredictionType
	}
	if filter.PredictionPeriod != "" {
		query["prediction_period"] = filter.PredictionPeriod
	}
	var predictions []model.Prediction
	err := r.list(ctx, repository.CollectionPredictions, query, bson.D{{Key: "prediction_period", Value: 1}}, &predictions)
	return predictions, err
}

func (r *analyticsRepository) RankCities(ctx context.Context, n int, order dto.RankOrder) ([]model.GeographicalInsight, error) {
	var insights []model.GeographicalInsight
	err := r.rank(ctx, repository.CollectionGeographicalInsight, "total_sales", n, order, &insights)
	return insights, err
}

func (r *analyticsRepository) RankCategories(ctx context.Context, n int, order dto.RankOrder) ([]model.CategoryPerformance, error) {
	var categories []model.CategoryPerformance
	err := r.rank(ctx, repository.CollectionCategoryPerformance, "total_revenue", n, order, &categories)
	return categories, err
}

func (r *analyticsRepository) list(ctx context.Context, collection string, query bson.M, sort bson.D, results interface{}) error {
	opts := options.Find().SetSort(sort)
	cursor, err := r.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return nil
}

func (r *analyticsRepository) rank(ctx context.Context, collection, metric string, n int, order dto.RankOrder, results interface{}) error {
	direction := -1
	if order == dto.RankBottom {
		direction = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: metric, Value: direction}}).
		SetLimit(int64(n))
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("failed to rank %s by %s: %w", collection, metric, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("failed to decode %s ranking: %w", collection, err)
	}
	return nil
}
