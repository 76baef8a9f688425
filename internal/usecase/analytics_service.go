package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/dto"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// ProjectionCache caches small ranked projections. Get reports a miss with
// found=false and a nil error; cache failures are never fatal to a read.
type ProjectionCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// AnalyticsService serves the materialized analytics families. All reads hit
// the high store; ranked top-N projections go through the cache first.
type AnalyticsService struct {
	repo   repository.AnalyticsRepository
	cache  ProjectionCache
	topN   int
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics read service. cache may be nil
// when no cache backend is configured.
func NewAnalyticsService(repo repository.AnalyticsRepository, cache ProjectionCache, topN int, logger *zap.Logger) *AnalyticsService {
	if topN <= 0 {
		topN = 10
	}
	return &AnalyticsService{repo: repo, cache: cache, topN: topN, logger: logger}
}

// SalesTrends lists trend rows, optionally filtered by period type.
func (s *AnalyticsService) SalesTrends(ctx context.Context, filter dto.TrendFilter) ([]model.SalesTrend, error) {
	return s.repo.ListSalesTrends(ctx, filter)
}

// ProductPerformance lists per-product rollups.
func (s *AnalyticsService) ProductPerformance(ctx context.Context, filter dto.ProductPerformanceFilter) ([]model.ProductPerformance, error) {
	return s.repo.ListProductPerformance(ctx, filter)
}

// CategoryPerformance lists per-category rollups.
func (s *AnalyticsService) CategoryPerformance(ctx context.Context, filter dto.CategoryPerformanceFilter) ([]model.CategoryPerformance, error) {
	return s.repo.ListCategoryPerformance(ctx, filter)
}

// Demographics lists age-group and gender segments.
func (s *AnalyticsService) Demographics(ctx context.Context, filter dto.DemographicsFilter) ([]model.Demographics, error) {
	return s.repo.ListDemographics(ctx, filter)
}

// Geography lists per-city rollups.
func (s *AnalyticsService) Geography(ctx context.Context, filter dto.GeographyFilter) ([]model.GeographicalInsight, error) {
	return s.repo.ListGeographicalInsights(ctx, filter)
}

// CustomerBehavior lists per-customer segments.
func (s *AnalyticsService) CustomerBehavior(ctx context.Context, filter dto.BehaviorFilter) ([]model.CustomerBehavior, error) {
	return s.repo.ListCustomerBehavior(ctx, filter)
}

// Predictions lists forward-looking projection rows.
func (s *AnalyticsService) Predictions(ctx context.Context, filter dto.PredictionFilter) ([]model.Prediction, error) {
	return s.repo.ListPredictions(ctx, filter)
}

// TopCities returns the n cities ranked by total sales, descending for
// RankTop and ascending for RankBottom. n <= 0 falls back to the configured
// default.
func (s *AnalyticsService) TopCities(ctx context.Context, n int, order dto.RankOrder) ([]model.GeographicalInsight, error) {
	if n <= 0 {
		n = s.topN
	}
	key := fmt.Sprintf("rank:cities:%s:%d", order, n)

	var cached []model.GeographicalInsight
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	insights, err := s.repo.RankCities(ctx, n, order)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, insights)
	return insights, nil
}

// TopCategories returns the n categories ranked by total sales.
func (s *AnalyticsService) TopCategories(ctx context.Context, n int, order dto.RankOrder) ([]model.CategoryPerformance, error) {
	if n <= 0 {
		n = s.topN
	}
	key := fmt.Sprintf("rank:categories:%s:%d", order, n)

	var cached []model.CategoryPerformance
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.repo.RankCategories(ctx, n, order)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, categories)
	return categories, nil
}

func (s *AnalyticsService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("projection cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *AnalyticsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("projection cache write failed", zap.String("key", key), zap.Error(err))
	}
}
