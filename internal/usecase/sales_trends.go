package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// PeriodKey buckets a sale date under one period type. The display formats
// (YYYY-MM-DD, YYYY-Wxx, YYYY-MM, YYYY-Qn, YYYY) sort lexicographically in
// chronological order, which the growth-rate pass relies on.
func PeriodKey(periodType string, t time.Time) string {
	switch periodType {
	case model.PeriodDaily:
		return t.Format("2006-01-02")
	case model.PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.PeriodMonthly:
		return t.Format("2006-01")
	case model.PeriodQuarterly:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case model.PeriodYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

type trendBucket struct {
	total    decimal.Decimal
	orders   int
	quantity int
}

// BuildSalesTrends materializes the sales trend family at all five period
// types from the full frame.
func BuildSalesTrends(rows []Row) []model.SalesTrend {
	var out []model.SalesTrend
	for _, periodType := range model.PeriodTypes {
		out = append(out, buildTrendFamily(rows, periodType)...)
	}
	return out
}

func buildTrendFamily(rows []Row, periodType string) []model.SalesTrend {
	buckets := make(map[string]*trendBucket)
	for _, row := range rows {
		key := PeriodKey(periodType, row.OrderDate)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &trendBucket{}
			buckets[key] = bucket
		}
		bucket.total = bucket.total.Add(decimal.NewFromFloat(revenueFor(row.Quantity, row.Price)))
		bucket.orders++
		bucket.quantity += row.Quantity
	}

	keys := make([]string, 0, len(buckets))
	grand := decimal.Zero
	for key, bucket := range buckets {
		keys = append(keys, key)
		grand = grand.Add(bucket.total)
	}
	sort.Strings(keys)

	out := make([]model.SalesTrend, 0, len(keys))
	prev := decimal.Zero
	for i, key := range keys {
		bucket := buckets[key]

		growth := 0.0
		if i > 0 && !prev.IsZero() {
			growth = bucket.total.Sub(prev).
				Div(prev).
				Mul(decimal.NewFromInt(100)).
				Round(2).
				InexactFloat64()
		}

		percentage := 0.0
		if !grand.IsZero() {
			percentage = bucket.total.
				Div(grand).
				Mul(decimal.NewFromInt(100)).
				Round(2).
				InexactFloat64()
		}

		avg := 0.0
		if bucket.orders > 0 {
			avg = bucket.total.
				Div(decimal.NewFromInt(int64(bucket.orders))).
				Round(2).
				InexactFloat64()
		}

		out = append(out, model.SalesTrend{
			ID:              model.TrendID(periodType, key),
			PeriodType:      periodType,
			PeriodValue:     key,
			TotalSales:      bucket.total.Round(2).InexactFloat64(),
			OrderCount:      bucket.orders,
			TotalQuantity:   bucket.quantity,
			AvgOrderValue:   avg,
			GrowthRate:      growth,
			SalesPercentage: percentage,
		})
		prev = bucket.total
	}
	return out
}
