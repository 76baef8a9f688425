package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/SdAm1n/DashAnalytics-sub000/internal/adapter/handler/http"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/config"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
	pkglogger "github.com/SdAm1n/DashAnalytics-sub000/pkg/logger"
)

type Server struct {
	config    *config.Config
	logger    *zap.Logger
	echo      *echo.Echo
	ingest    *usecase.IngestService
	analytics *usecase.AnalyticsService
}

func NewServer(cfg *config.Config, logger *zap.Logger, ingest *usecase.IngestService, analytics *usecase.AnalyticsService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(pkglogger.NewEchoRequestLogger(logger))
	e.Use(middleware.Recover())

	return &Server{
		config:    cfg,
		logger:    logger,
		echo:      e,
		ingest:    ingest,
		analytics: analytics,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	uploadHandler := handlers.NewUploadHandler(s.ingest, s.logger)
	analyticsHandler := handlers.NewAnalyticsHandler(s.analytics, s.logger)

	v1 := s.echo.Group("/api/v1")

	// Ingest
	uploads := v1.Group("/uploads")
	uploads.POST("", uploadHandler.Upload)
	uploads.GET("", uploadHandler.ListJobs)
	uploads.GET("/:id", uploadHandler.GetJob)

	// Materialized analytics
	analytics := v1.Group("/analytics")
	analytics.GET("/sales-trends", analyticsHandler.GetSalesTrends)
	analytics.GET("/product-performance", analyticsHandler.GetProductPerformance)
	analytics.GET("/category-performance", analyticsHandler.GetCategoryPerformance)
	analytics.GET("/demographics", analyticsHandler.GetDemographics)
	analytics.GET("/geography", analyticsHandler.GetGeography)
	analytics.GET("/customer-behavior", analyticsHandler.GetCustomerBehavior)
	analytics.GET("/predictions", analyticsHandler.GetPredictions)
	analytics.GET("/geography/rank", analyticsHandler.GetTopCities)
	analytics.GET("/category-performance/rank", analyticsHandler.GetTopCategories)
}
