package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/adapter/repository"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/config"
	domainrepo "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// Registry owns the two store clients and hands out their adapters.
type Registry struct {
	lowClient  *mongo.Client
	highClient *mongo.Client
	lowDB      *mongo.Database
	highDB     *mongo.Database
	low        *repository.MongoStore
	high       *repository.MongoStore
}

// NewRegistry connects both stores and builds their adapters. Startup fails
// when either store is unreachable; degraded single-store operation is a
// runtime condition, not a boot mode.
func NewRegistry(ctx context.Context, cfg config.StoresConfig, logger *zap.Logger) (*Registry, error) {
	lowClient, err := Connect(ctx, cfg.Low)
	if err != nil {
		return nil, fmt.Errorf("low store: %w", err)
	}
	highClient, err := Connect(ctx, cfg.High)
	if err != nil {
		disconnect(ctx, lowClient, logger)
		return nil, fmt.Errorf("high store: %w", err)
	}

	r := &Registry{
		lowClient:  lowClient,
		highClient: highClient,
		lowDB:      lowClient.Database(cfg.Low.Database),
		highDB:     highClient.Database(cfg.High.Database),
	}
	r.low = repository.NewMongoStore(domainrepo.StoreLow, r.lowDB, logger)
	r.high = repository.NewMongoStore(domainrepo.StoreHigh, r.highDB, logger)

	logger.Info("document stores connected",
		zap.String("low", cfg.Low.Database),
		zap.String("high", cfg.High.Database))
	return r, nil
}

// Store returns the adapter for one logical store.
func (r *Registry) Store(name domainrepo.StoreName) domainrepo.Store {
	if name == domainrepo.StoreHigh {
		return r.high
	}
	return r.low
}

// Both returns the low and high stores, in that order.
func (r *Registry) Both() []domainrepo.Store {
	return []domainrepo.Store{r.low, r.high}
}

// LowDatabase returns the low store's database handle for direct-driver
// consumers.
func (r *Registry) LowDatabase() *mongo.Database {
	return r.lowDB
}

// HighDatabase returns the high store's database handle.
func (r *Registry) HighDatabase() *mongo.Database {
	return r.highDB
}

// Close disconnects both clients.
func (r *Registry) Close(ctx context.Context) error {
	var firstErr error
	for _, client := range []*mongo.Client{r.lowClient, r.highClient} {
		if err := client.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func disconnect(ctx context.Context, client *mongo.Client, logger *zap.Logger) {
	if err := client.Disconnect(ctx); err != nil {
		logger.Warn("failed to disconnect store client", zap.Error(err))
	}
}
