package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// BuildGeographicalInsights materializes the per-city aggregate.
func BuildGeographicalInsights(rows []Row) []model.GeographicalInsight {
	type cityBucket struct {
		sales  decimal.Decimal
		orders int
	}
	buckets := make(map[string]*cityBucket)
	for _, row := range rows {
		bucket, ok := buckets[row.City]
		if !ok {
			bucket = &cityBucket{}
			buckets[row.City] = bucket
		}
		bucket.sales = bucket.sales.Add(decimal.NewFromFloat(revenueFor(row.Quantity, row.Price)))
		bucket.orders++
	}

	cities := make([]string, 0, len(buckets))
	for city := range buckets {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	out := make([]model.GeographicalInsight, 0, len(cities))
	for _, city := range cities {
		bucket := buckets[city]
		avg := decimal.Zero
		if bucket.orders > 0 {
			avg = bucket.sales.Div(decimal.NewFromInt(int64(bucket.orders)))
		}
		out = append(out, model.GeographicalInsight{
			City:          city,
			TotalSales:    bucket.sales.Round(2).InexactFloat64(),
			TotalOrders:   bucket.orders,
			AvgOrderValue: avg.Round(2).InexactFloat64(),
		})
	}
	return out
}
