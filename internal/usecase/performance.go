package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

type productBucket struct {
	name     string
	category string
	quantity int
	revenue  decimal.Decimal
	sales    int
}

// BuildProductPerformance materializes the per-product aggregate. The single
// highest-quantity product is flagged best selling, the single lowest worst
// selling; quantity ties resolve to the lower product id. Every product in
// the most profitable category is flagged top category.
func BuildProductPerformance(rows []Row) []model.ProductPerformance {
	buckets := make(map[int]*productBucket)
	for _, row := range rows {
		bucket, ok := buckets[row.ProductID]
		if !ok {
			bucket = &productBucket{}
			buckets[row.ProductID] = bucket
		}
		bucket.name = row.ProductName
		bucket.category = row.CategoryName
		bucket.quantity += row.Quantity
		bucket.revenue = bucket.revenue.Add(decimal.NewFromFloat(revenueFor(row.Quantity, row.Price)))
		bucket.sales++
	}
	if len(buckets) == 0 {
		return nil
	}

	ids := make([]int, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	bestID, worstID := ids[0], ids[0]
	categoryRevenue := make(map[string]decimal.Decimal)
	for _, id := range ids {
		bucket := buckets[id]
		if bucket.quantity > buckets[bestID].quantity {
			bestID = id
		}
		if bucket.quantity < buckets[worstID].quantity {
			worstID = id
		}
		categoryRevenue[bucket.category] = categoryRevenue[bucket.category].Add(bucket.revenue)
	}
	topCategory := maxProfitCategory(categoryRevenue)

	out := make([]model.ProductPerformance, 0, len(ids))
	for _, id := range ids {
		bucket := buckets[id]
		avg := decimal.Zero
		if bucket.sales > 0 {
			avg = bucket.revenue.Div(decimal.NewFromInt(int64(bucket.sales)))
		}
		out = append(out, model.ProductPerformance{
			ProductID:     id,
			ProductName:   bucket.name,
			Category:      bucket.category,
			TotalQuantity: bucket.quantity,
			TotalRevenue:  bucket.revenue.Round(2).InexactFloat64(),
			AvgRevenue:    avg.Round(2).InexactFloat64(),
			BestSelling:   id == bestID,
			WorstSelling:  id == worstID,
			TopCategory:   bucket.category == topCategory,
		})
	}
	return out
}

// BuildCategoryPerformance materializes the per-category aggregate and flags
// the single most profitable category. Profit is the fixed margin applied to
// revenue, the same rule the top-category product flag uses.
func BuildCategoryPerformance(rows []Row, margin float64) []model.CategoryPerformance {
	type categoryBucket struct {
		quantity int
		revenue  decimal.Decimal
		sales    int
	}
	buckets := make(map[string]*categoryBucket)
	for _, row := range rows {
		bucket, ok := buckets[row.CategoryName]
		if !ok {
			bucket = &categoryBucket{}
			buckets[row.CategoryName] = bucket
		}
		bucket.quantity += row.Quantity
		bucket.revenue = bucket.revenue.Add(decimal.NewFromFloat(revenueFor(row.Quantity, row.Price)))
		bucket.sales++
	}
	if len(buckets) == 0 {
		return nil
	}

	categoryRevenue := make(map[string]decimal.Decimal, len(buckets))
	for category, bucket := range buckets {
		categoryRevenue[category] = bucket.revenue
	}
	topCategory := maxProfitCategory(categoryRevenue)

	categories := make([]string, 0, len(buckets))
	for category := range buckets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	marginDec := decimal.NewFromFloat(margin)
	out := make([]model.CategoryPerformance, 0, len(categories))
	for _, category := range categories {
		bucket := buckets[category]
		avg := decimal.Zero
		if bucket.sales > 0 {
			avg = bucket.revenue.Div(decimal.NewFromInt(int64(bucket.sales)))
		}
		out = append(out, model.CategoryPerformance{
			Category:      category,
			TotalQuantity: bucket.quantity,
			TotalRevenue:  bucket.revenue.Round(2).InexactFloat64(),
			AvgRevenue:    avg.Round(2).InexactFloat64(),
			TotalProfit:   bucket.revenue.Mul(marginDec).Round(2).InexactFloat64(),
			HighestProfit: category == topCategory,
		})
	}
	return out
}

// maxProfitCategory picks the category with the highest revenue (profit is a
// fixed margin of revenue, so the ranking is identical). Ties resolve to the
// lexicographically smaller name.
func maxProfitCategory(revenueByCategory map[string]decimal.Decimal) string {
	categories := make([]string, 0, len(revenueByCategory))
	for category := range revenueByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	top := ""
	for _, category := range categories {
		if top == "" || revenueByCategory[category].GreaterThan(revenueByCategory[top]) {
			top = category
		}
	}
	return top
}
