package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// ReconcileResult reports what the sweep changed.
type ReconcileResult struct {
	Copies     int `json:"copies"`
	Mismatches int `json:"mismatches"`
}

// Reconciler equalizes the replicated sales trend family between the two
// stores after an ingest. It works through the direct driver path so copying
// never re-triggers routing logic, and it is idempotent: running it against
// already-equal stores changes nothing.
type Reconciler struct {
	trends repository.TrendRepository
	logger *zap.Logger
}

// NewReconciler creates a new trend reconciler.
func NewReconciler(trends repository.TrendRepository, logger *zap.Logger) *Reconciler {
	return &Reconciler{trends: trends, logger: logger}
}

// Reconcile sweeps every period type. A record present in only one store is
// copied across verbatim. When both stores hold the record with different
// values, the high store wins; that tiebreak is arbitrary but stated policy.
func (r *Reconciler) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	for _, periodType := range model.PeriodTypes {
		lowCount, err := r.trends.Count(ctx, repository.StoreLow, periodType)
		if err != nil {
			return nil, fmt.Errorf("failed to count low trends: %w", err)
		}
		highCount, err := r.trends.Count(ctx, repository.StoreHigh, periodType)
		if err != nil {
			return nil, fmt.Errorf("failed to count high trends: %w", err)
		}
		if lowCount != highCount {
			r.logger.Info("trend counts diverged",
				zap.String("period_type", periodType),
				zap.Int64("low", lowCount),
				zap.Int64("high", highCount))
		}

		ids, err := r.unionIDs(ctx, periodType)
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			lowTrend, err := r.trends.Get(ctx, repository.StoreLow, id)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch low trend %s: %w", id, err)
			}
			highTrend, err := r.trends.Get(ctx, repository.StoreHigh, id)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch high trend %s: %w", id, err)
			}

			switch {
			case lowTrend == nil && highTrend == nil:
				continue
			case highTrend == nil:
				if err := r.trends.Replace(ctx, repository.StoreHigh, lowTrend); err != nil {
					return nil, fmt.Errorf("failed to copy trend %s to high: %w", id, err)
				}
				result.Copies++
			case lowTrend == nil:
				if err := r.trends.Replace(ctx, repository.StoreLow, highTrend); err != nil {
					return nil, fmt.Errorf("failed to copy trend %s to low: %w", id, err)
				}
				result.Copies++
			case *lowTrend != *highTrend:
				if err := r.trends.Replace(ctx, repository.StoreLow, highTrend); err != nil {
					return nil, fmt.Errorf("failed to resolve trend %s: %w", id, err)
				}
				result.Mismatches++
			}
		}
	}

	if result.Copies > 0 || result.Mismatches > 0 {
		r.logger.Info("reconciled sales trends",
			zap.Int("copies", result.Copies),
			zap.Int("mismatches", result.Mismatches))
	}
	return result, nil
}

func (r *Reconciler) unionIDs(ctx context.Context, periodType string) ([]string, error) {
	lowIDs, err := r.trends.IDs(ctx, repository.StoreLow, periodType)
	if err != nil {
		return nil, fmt.Errorf("failed to list low trend ids: %w", err)
	}
	highIDs, err := r.trends.IDs(ctx, repository.StoreHigh, periodType)
	if err != nil {
		return nil, fmt.Errorf("failed to list high trend ids: %w", err)
	}

	seen := make(map[string]struct{}, len(lowIDs)+len(highIDs))
	var ids []string
	for _, id := range append(lowIDs, highIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
