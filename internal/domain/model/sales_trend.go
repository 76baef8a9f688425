package model

// Period types for the sales trend family.
const (
	PeriodDaily     = "daily"
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// PeriodTypes lists the five trend granularities in ascending bucket size.
var PeriodTypes = []string{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly}

// SalesTrend is one aggregate bucket of the sales trend family. The document
// id is the stable "TREND-{period_type}-{period_value}" key, so rebuilding
// the family on every ingest overwrites in place. (period_type, period_value)
// is unique within one store.
type SalesTrend struct {
	ID              string  `bson:"_id" json:"id"`
	PeriodType      string  `bson:"period_type" json:"period_type"`
	PeriodValue     string  `bson:"period_value" json:"period_value"`
	TotalSales      float64 `bson:"total_sales" json:"total_sales"`
	OrderCount      int     `bson:"order_count" json:"order_count"`
	TotalQuantity   int     `bson:"total_quantity" json:"total_quantity"`
	AvgOrderValue   float64 `bson:"avg_order_value" json:"avg_order_value"`
	GrowthRate      float64 `bson:"growth_rate" json:"growth_rate"`
	SalesPercentage float64 `bson:"sales_percentage" json:"sales_percentage"`
}

// TrendID builds the stable document id for a trend bucket.
func TrendID(periodType, periodValue string) string {
	return "TREND-" + periodType + "-" + periodValue
}
