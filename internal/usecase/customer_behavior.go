package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// monthsSpanned is the calendar-month distance between the first and last
// sale, floored at one so a single-month customer still has a frequency.
func monthsSpanned(first, last time.Time) int {
	months := (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month())
	if months < 1 {
		return 1
	}
	return months
}

// BuildCustomerBehavior materializes the per-customer purchasing aggregate
// and assigns segments. The segment rules are evaluated top to bottom:
// VIP first, then Regular, else Occasional.
func BuildCustomerBehavior(rows []Row) []model.CustomerBehavior {
	type customerBucket struct {
		purchases int
		spent     decimal.Decimal
		first     time.Time
		last      time.Time
	}
	buckets := make(map[int]*customerBucket)
	for _, row := range rows {
		bucket, ok := buckets[row.CustomerID]
		if !ok {
			bucket = &customerBucket{first: row.OrderDate, last: row.OrderDate}
			buckets[row.CustomerID] = bucket
		}
		bucket.purchases++
		bucket.spent = bucket.spent.Add(decimal.NewFromFloat(revenueFor(row.Quantity, row.Price)))
		if row.OrderDate.Before(bucket.first) {
			bucket.first = row.OrderDate
		}
		if row.OrderDate.After(bucket.last) {
			bucket.last = row.OrderDate
		}
	}

	ids := make([]int, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]model.CustomerBehavior, 0, len(ids))
	for _, id := range ids {
		bucket := buckets[id]
		span := monthsSpanned(bucket.first, bucket.last)
		frequency := decimal.NewFromInt(int64(bucket.purchases)).
			Div(decimal.NewFromInt(int64(span))).
			Round(2).
			InexactFloat64()
		spent := bucket.spent.Round(2).InexactFloat64()
		out = append(out, model.CustomerBehavior{
			CustomerID:     id,
			TotalPurchases: bucket.purchases,
			TotalSpent:     spent,
			Frequency:      frequency,
			Segment:        model.SegmentFor(spent, frequency),
		})
	}
	return out
}
