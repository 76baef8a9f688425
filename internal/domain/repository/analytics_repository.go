package repository

import (
	"context"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/dto"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// AnalyticsRepository is the read interface over the materialized aggregate
// families, consumed by external views. Reads are served from the high store;
// the reconciler makes it the authority for replicated aggregates.
type AnalyticsRepository interface {
	ListSalesTrends(ctx context.Context, filter dto.TrendFilter) ([]model.SalesTrend, error)
	ListProductPerformance(ctx context.Context, filter dto.ProductPerformanceFilter) ([]model.ProductPerformance, error)
	ListCategoryPerformance(ctx context.Context, filter dto.CategoryPerformanceFilter) ([]model.CategoryPerformance, error)
	ListDemographics(ctx context.Context, filter dto.DemographicsFilter) ([]model.Demographics, error)
	ListGeographicalInsights(ctx context.Context, filter dto.GeographyFilter) ([]model.GeographicalInsight, error)
	ListCustomerBehavior(ctx context.Context, filter dto.BehaviorFilter) ([]model.CustomerBehavior, error)
	ListPredictions(ctx context.Context, filter dto.PredictionFilter) ([]model.Prediction, error)

	// RankCities returns the n cities with the highest (or lowest) total sales.
	RankCities(ctx context.Context, n int, order dto.RankOrder) ([]model.GeographicalInsight, error)
	// RankCategories returns the n categories with the highest (or lowest)
	// total revenue.
	RankCategories(ctx context.Context, n int, order dto.RankOrder) ([]model.CategoryPerformance, error)
}
