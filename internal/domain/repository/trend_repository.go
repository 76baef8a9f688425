package repository

import (
	"context"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// TrendRepository is the reconciler's direct-driver view of the sales_trends
// collection in each store. It bypasses the upsert abstraction so copying a
// record across stores never re-triggers routing logic.
type TrendRepository interface {
	Count(ctx context.Context, store StoreName, periodType string) (int64, error)
	IDs(ctx context.Context, store StoreName, periodType string) ([]string, error)
	// Get returns nil with no error when the record is absent.
	Get(ctx context.Context, store StoreName, id string) (*model.SalesTrend, error)
	// Replace writes the trend verbatim, preserving its composite key.
	Replace(ctx context.Context, store StoreName, trend *model.SalesTrend) error
}
