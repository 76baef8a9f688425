package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/dto"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
)

type AnalyticsHandler struct {
	analytics *usecase.AnalyticsService
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics *usecase.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *AnalyticsHandler) GetSalesTrends(c echo.Context) error {
	var filter dto.TrendFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}
	if err := c.Validate(filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid period_type parameter"})
	}

	trends, err := h.analytics.SalesTrends(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get sales trends", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get sales trends",
		})
	}

	return c.JSON(http.StatusOK, trends)
}

func (h *AnalyticsHandler) GetProductPerformance(c echo.Context) error {
	var filter dto.ProductPerformanceFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product_id parameter"})
	}
	if err := c.Validate(filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}

	products, err := h.analytics.ProductPerformance(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get product performance", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get product performance",
		})
	}

	return c.JSON(http.StatusOK, products)
}

func (h *AnalyticsHandler) GetCategoryPerformance(c echo.Context) error {
	var filter dto.CategoryPerformanceFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}
	if err := c.Validate(filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}

	categories, err := h.analytics.CategoryPerformance(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get category performance", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get category performance",
		})
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *AnalyticsHandler) GetDemographics(c echo.Context) error {
	var filter dto.DemographicsFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}
	if err := c.Validate(filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}

	segments, err := h.analytics.Demographics(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get demographics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get demographics",
		})
	}

	return c.JSON(http.StatusOK, segments)
}

func (h *AnalyticsHandler) GetGeography(c echo.Context) error {
	var filter dto.GeographyFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}
	if err := c.Validate(filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}

	insights, err := h.analytics.Geography(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get geographical insights", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get geographical insights",
		})
	}

	return c.JSON(http.StatusOK, insights)
}

func (h *AnalyticsHandler) GetCustomerBehavior(c echo.Context) error {
	var filter dto.BehaviorFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid customer_id parameter"})
	}
	if err := c.Validate(filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid segment parameter"})
	}

	behaviors, err := h.analytics.CustomerBehavior(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get customer behavior", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get customer behavior",
		})
	}

	return c.JSON(http.StatusOK, behaviors)
}

func (h *AnalyticsHandler) GetPredictions(c echo.Context) error {
	var filter dto.PredictionFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}
	if err := c.Validate(filter); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid prediction_type parameter"})
	}

	predictions, err := h.analytics.Predictions(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get predictions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get predictions",
		})
	}

	return c.JSON(http.StatusOK, predictions)
}

func (h *AnalyticsHandler) GetTopCities(c echo.Context) error {
	query, err := h.rankQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid limit or order parameter"})
	}

	insights, err := h.analytics.TopCities(c.Request().Context(), query.Limit, query.Order)
	if err != nil {
		h.logger.Error("Failed to rank cities", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to rank cities",
		})
	}

	return c.JSON(http.StatusOK, insights)
}

func (h *AnalyticsHandler) GetTopCategories(c echo.Context) error {
	query, err := h.rankQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid limit or order parameter"})
	}

	categories, err := h.analytics.TopCategories(c.Request().Context(), query.Limit, query.Order)
	if err != nil {
		h.logger.Error("Failed to rank categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to rank categories",
		})
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *AnalyticsHandler) rankQuery(c echo.Context) (dto.RankQuery, error) {
	var query dto.RankQuery
	if err := c.Bind(&query); err != nil {
		return query, err
	}
	if err := c.Validate(query); err != nil {
		return query, err
	}
	if query.Order == "" {
		query.Order = dto.RankTop
	}
	return query, nil
}
