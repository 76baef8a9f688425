package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// BuildDemographics materializes the (age bucket, gender) aggregate. The
// customer count is distinct customers, not rows.
func BuildDemographics(rows []Row) []model.Demographics {
	type demoKey struct {
		ageGroup string
		gender   string
	}
	type demoBucket struct {
		customers map[int]struct{}
		spent     decimal.Decimal
	}

	buckets := make(map[demoKey]*demoBucket)
	for _, row := range rows {
		key := demoKey{ageGroup: model.AgeGroupFor(row.Age), gender: row.Gender}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &demoBucket{customers: make(map[int]struct{})}
			buckets[key] = bucket
		}
		bucket.customers[row.CustomerID] = struct{}{}
		bucket.spent = bucket.spent.Add(decimal.NewFromFloat(revenueFor(row.Quantity, row.Price)))
	}

	keys := make([]demoKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ageGroup != keys[j].ageGroup {
			return keys[i].ageGroup < keys[j].ageGroup
		}
		return keys[i].gender < keys[j].gender
	})

	out := make([]model.Demographics, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		out = append(out, model.Demographics{
			AgeGroup:       key.ageGroup,
			Gender:         key.gender,
			TotalCustomers: len(bucket.customers),
			TotalSpent:     bucket.spent.Round(2).InexactFloat64(),
		})
	}
	return out
}
