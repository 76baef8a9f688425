package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// Model labels recorded on prediction documents.
const (
	predictionModelTopProduct = "quantity-leader"
	predictionModelTrend      = "mean-growth-3m"
)

// nextQuarterLabel returns the display key of the calendar quarter after the
// one containing t.
func nextQuarterLabel(t time.Time) string {
	quarter := (int(t.Month())-1)/3 + 1
	year := t.Year()
	if quarter == 4 {
		return fmt.Sprintf("%d-Q1", year+1)
	}
	return fmt.Sprintf("%d-Q%d", year, quarter+1)
}

// BuildPredictions emits the two forward records for the next calendar
// quarter after the latest sale in the frame: the predicted top product by
// quantity and the mean of the last three monthly growth rates. An empty
// frame produces none.
func BuildPredictions(rows []Row, trends []model.SalesTrend, products []model.ProductPerformance) []model.Prediction {
	if len(rows) == 0 {
		return nil
	}

	latest := rows[0].OrderDate
	for _, row := range rows[1:] {
		if row.OrderDate.After(latest) {
			latest = row.OrderDate
		}
	}
	period := nextQuarterLabel(latest)
	now := time.Now().UTC()

	var out []model.Prediction

	if top := bestSellingProduct(products); top != nil {
		out = append(out, model.Prediction{
			PredictionType:   model.PredictionTopProduct,
			PredictionPeriod: period,
			PredictedValue:   top.ProductName,
			Details: map[string]interface{}{
				"product_id":     top.ProductID,
				"total_quantity": top.TotalQuantity,
				"category":       top.Category,
			},
			Model:       predictionModelTopProduct,
			GeneratedAt: now,
		})
	}

	rates, months := lastMonthlyGrowthRates(trends, 3)
	mean := decimal.Zero
	if len(rates) > 0 {
		sum := decimal.Zero
		for _, r := range rates {
			sum = sum.Add(decimal.NewFromFloat(r))
		}
		mean = sum.Div(decimal.NewFromInt(int64(len(rates))))
	}
	out = append(out, model.Prediction{
		PredictionType:   model.PredictionSalesTrend,
		PredictionPeriod: period,
		PredictedValue:   mean.Round(2).InexactFloat64(),
		Details: map[string]interface{}{
			"source_growth_rates": rates,
			"source_months":       months,
		},
		Model:       predictionModelTrend,
		GeneratedAt: now,
	})

	return out
}

func bestSellingProduct(products []model.ProductPerformance) *model.ProductPerformance {
	for i := range products {
		if products[i].BestSelling {
			return &products[i]
		}
	}
	return nil
}

// lastMonthlyGrowthRates returns up to n growth rates from the tail of the
// chronologically ordered monthly trend buckets.
func lastMonthlyGrowthRates(trends []model.SalesTrend, n int) ([]float64, []string) {
	var monthly []model.SalesTrend
	for _, trend := range trends {
		if trend.PeriodType == model.PeriodMonthly {
			monthly = append(monthly, trend)
		}
	}
	if len(monthly) > n {
		monthly = monthly[len(monthly)-n:]
	}
	rates := make([]float64, 0, len(monthly))
	months := make([]string, 0, len(monthly))
	for _, trend := range monthly {
		rates = append(rates, trend.GrowthRate)
		months = append(months, trend.PeriodValue)
	}
	return rates, months
}
