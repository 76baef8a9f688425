package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/adapter/cache"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/adapter/repository"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/config"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/infrastructure/database"
	httpServer "github.com/SdAm1n/DashAnalytics-sub000/internal/infrastructure/http"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
	"github.com/SdAm1n/DashAnalytics-sub000/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect both document stores
	stores, err := database.NewRegistry(ctx, cfg.Stores, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect document stores", zap.Error(err))
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		if err := stores.Close(closeCtx); err != nil {
			zapLogger.Error("Failed to close store clients", zap.Error(err))
		}
	}()

	// Ensure unique keys on both stores
	if err := database.EnsureIndexes(ctx, stores.LowDatabase()); err != nil {
		zapLogger.Fatal("Failed to ensure indexes on low store", zap.Error(err))
	}
	if err := database.EnsureIndexes(ctx, stores.HighDatabase()); err != nil {
		zapLogger.Fatal("Failed to ensure indexes on high store", zap.Error(err))
	}

	// Projection cache; the service runs without it when Redis is down
	var projectionCache usecase.ProjectionCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, serving rankings uncached", zap.Error(err))
	} else {
		projectionCache = cache.NewRedisProjectionCache(redisClient, cfg.Redis.CacheTTL())
	}
	defer redisClient.Close()

	// Repositories
	jobRepo := repository.NewUploadJobRepository(stores, zapLogger)
	trendRepo := repository.NewTrendRepository(stores.LowDatabase(), stores.HighDatabase())
	analyticsRepo := repository.NewAnalyticsRepository(stores.HighDatabase())

	// Usecases
	writer := usecase.NewBulkWriter(stores, jobRepo, usecase.WriterOptions{
		ChunkSize:    cfg.Ingest.ChunkSize,
		Workers:      cfg.Ingest.Workers,
		ProfitMargin: cfg.Analytics.ProfitMargin,
	}, zapLogger)
	materializer := usecase.NewMaterializer(stores, cfg.Analytics.ProfitMargin, zapLogger)
	reconciler := usecase.NewReconciler(trendRepo, zapLogger)
	ingest := usecase.NewIngestService(jobRepo, writer, materializer, reconciler, zapLogger)
	analytics := usecase.NewAnalyticsService(analyticsRepo, projectionCache, cfg.Analytics.TopN, zapLogger)

	// HTTP server
	srv := httpServer.NewServer(cfg, zapLogger, ingest, analytics)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
