package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
)

func TestSegmentFor(t *testing.T) {
	assert.Equal(t, model.SegmentVIP, model.SegmentFor(1500, 0.5))
	assert.Equal(t, model.SegmentVIP, model.SegmentFor(100, 2))
	assert.Equal(t, model.SegmentRegular, model.SegmentFor(600, 0.5))
	assert.Equal(t, model.SegmentRegular, model.SegmentFor(100, 1))
	assert.Equal(t, model.SegmentOccasional, model.SegmentFor(100, 0.5))
	assert.Equal(t, model.SegmentOccasional, model.SegmentFor(500, 0.99))
}

func TestBuildCustomerBehavior(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	may := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	rows := []usecase.Row{
		// customer 1: 2 purchases over 4 months, spend 1200
		testRow(1, 10, func(r *usecase.Row) {
			r.OrderDate = jan
			r.Quantity = 1
			r.Price = 600
		}),
		testRow(1, 11, func(r *usecase.Row) {
			r.OrderDate = may
			r.Quantity = 1
			r.Price = 600
		}),
		// customer 2: a single small purchase
		testRow(2, 10, func(r *usecase.Row) {
			r.OrderDate = jan
			r.Quantity = 1
			r.Price = 50
		}),
	}

	behaviors := usecase.BuildCustomerBehavior(rows)
	require.Len(t, behaviors, 2)

	first := behaviors[0]
	assert.Equal(t, 1, first.CustomerID)
	assert.Equal(t, 2, first.TotalPurchases)
	assert.Equal(t, 1200.0, first.TotalSpent)
	assert.Equal(t, 0.5, first.Frequency)
	assert.Equal(t, model.SegmentVIP, first.Segment)

	second := behaviors[1]
	assert.Equal(t, 2, second.CustomerID)
	assert.Equal(t, 1, second.TotalPurchases)
	// single-month span floors at one, so one purchase is frequency 1
	assert.Equal(t, 1.0, second.Frequency)
	assert.Equal(t, model.SegmentRegular, second.Segment)
}

func TestBuildCustomerBehaviorSingleMonth(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []usecase.Row{
		testRow(1, 10, func(r *usecase.Row) {
			r.OrderDate = date
			r.Quantity = 1
			r.Price = 10
		}),
		testRow(1, 11, func(r *usecase.Row) {
			r.OrderDate = date.AddDate(0, 0, 20)
			r.Quantity = 1
			r.Price = 10
		}),
	}

	behaviors := usecase.BuildCustomerBehavior(rows)
	require.Len(t, behaviors, 1)
	assert.Equal(t, 2.0, behaviors[0].Frequency)
	assert.Equal(t, model.SegmentVIP, behaviors[0].Segment)
}
