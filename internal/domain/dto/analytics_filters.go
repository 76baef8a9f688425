package dto

// Filters for the aggregate read interface. Filter fields are drawn from each
// family's key; nil/zero fields are not applied. The query tags bind the
// fields from request query strings, the validate tags gate them before the
// repository sees the filter.

// TrendFilter selects sales trend buckets.
type TrendFilter struct {
	PeriodType  string `query:"period_type" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	PeriodValue string `query:"period_value"`
}

// ProductPerformanceFilter selects product performance records.
type ProductPerformanceFilter struct {
	ProductID *int   `query:"product_id"`
	Category  string `query:"category"`
}

// CategoryPerformanceFilter selects category performance records.
type CategoryPerformanceFilter struct {
	Category string `query:"category"`
}

// DemographicsFilter selects demographics buckets.
type DemographicsFilter struct {
	AgeGroup string `query:"age_group"`
	Gender   string `query:"gender"`
}

// GeographyFilter selects city aggregates.
type GeographyFilter struct {
	City string `query:"city"`
}

// BehaviorFilter selects customer behavior records.
type BehaviorFilter struct {
	CustomerID *int   `query:"customer_id"`
	Segment    string `query:"segment" validate:"omitempty,oneof=VIP Regular Occasional"`
}

// PredictionFilter selects prediction records.
type PredictionFilter struct {
	PredictionType   string `query:"prediction_type" validate:"omitempty,oneof=future_top_product future_sales_trend"`
	PredictionPeriod string `query:"prediction_period"`
}

// RankOrder directs the derived top-N/bottom-N projections.
type RankOrder string

const (
	RankTop    RankOrder = "top"
	RankBottom RankOrder = "bottom"
)

// RankQuery carries the limit and direction of a ranking request. A zero
// limit means the configured default.
type RankQuery struct {
	Limit int       `query:"limit" validate:"gte=0"`
	Order RankOrder `query:"order" validate:"omitempty,oneof=top bottom"`
}
