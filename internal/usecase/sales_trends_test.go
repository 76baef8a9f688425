package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
)

func TestPeriodKey(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-15", usecase.PeriodKey(model.PeriodDaily, date))
	assert.Equal(t, "2024-W11", usecase.PeriodKey(model.PeriodWeekly, date))
	assert.Equal(t, "2024-03", usecase.PeriodKey(model.PeriodMonthly, date))
	assert.Equal(t, "2024-Q1", usecase.PeriodKey(model.PeriodQuarterly, date))
	assert.Equal(t, "2024", usecase.PeriodKey(model.PeriodYearly, date))

	// ISO week years can differ from the calendar year at the boundary
	newYear := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W53", usecase.PeriodKey(model.PeriodWeekly, newYear))
}

func monthlyTrends(trends []model.SalesTrend) []model.SalesTrend {
	var out []model.SalesTrend
	for _, trend := range trends {
		if trend.PeriodType == model.PeriodMonthly {
			out = append(out, trend)
		}
	}
	return out
}

func TestBuildSalesTrends(t *testing.T) {
	rows := []usecase.Row{
		// 2024-01: 2 orders, revenue 100
		testRow(1, 10, func(r *usecase.Row) {
			r.OrderDate = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
			r.Quantity = 4
			r.Price = 10
		}),
		testRow(2, 11, func(r *usecase.Row) {
			r.OrderDate = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
			r.Quantity = 6
			r.Price = 10
		}),
		// 2024-02: 1 order, revenue 150
		testRow(3, 12, func(r *usecase.Row) {
			r.OrderDate = time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
			r.Quantity = 15
			r.Price = 10
		}),
	}

	trends := usecase.BuildSalesTrends(rows)

	t.Run("covers all five period types", func(t *testing.T) {
		types := map[string]bool{}
		for _, trend := range trends {
			types[trend.PeriodType] = true
		}
		for _, periodType := range model.PeriodTypes {
			assert.True(t, types[periodType], periodType)
		}
	})

	t.Run("monthly buckets aggregate in order", func(t *testing.T) {
		monthly := monthlyTrends(trends)
		require.Len(t, monthly, 2)

		jan := monthly[0]
		assert.Equal(t, "TREND-monthly-2024-01", jan.ID)
		assert.Equal(t, "2024-01", jan.PeriodValue)
		assert.Equal(t, 100.0, jan.TotalSales)
		assert.Equal(t, 2, jan.OrderCount)
		assert.Equal(t, 10, jan.TotalQuantity)
		assert.Equal(t, 50.0, jan.AvgOrderValue)
		// first bucket has no predecessor
		assert.Equal(t, 0.0, jan.GrowthRate)
		assert.Equal(t, 40.0, jan.SalesPercentage)

		feb := monthly[1]
		assert.Equal(t, 150.0, feb.TotalSales)
		assert.Equal(t, 50.0, feb.GrowthRate)
		assert.Equal(t, 60.0, feb.SalesPercentage)
	})

	t.Run("yearly bucket spans the frame", func(t *testing.T) {
		var yearly []model.SalesTrend
		for _, trend := range trends {
			if trend.PeriodType == model.PeriodYearly {
				yearly = append(yearly, trend)
			}
		}
		require.Len(t, yearly, 1)
		assert.Equal(t, 250.0, yearly[0].TotalSales)
		assert.Equal(t, 3, yearly[0].OrderCount)
		assert.Equal(t, 100.0, yearly[0].SalesPercentage)
	})

	t.Run("empty frame yields no trends", func(t *testing.T) {
		assert.Empty(t, usecase.BuildSalesTrends(nil))
	})

	t.Run("single bucket has zero growth and full share", func(t *testing.T) {
		single := usecase.BuildSalesTrends(rows[:1])
		monthly := monthlyTrends(single)
		require.Len(t, monthly, 1)
		assert.Equal(t, 0.0, monthly[0].GrowthRate)
		assert.Equal(t, 100.0, monthly[0].SalesPercentage)
	})
}
