package model

// GeographicalInsight is the per-city aggregate.
type GeographicalInsight struct {
	City          string  `bson:"city" json:"city"`
	TotalSales    float64 `bson:"total_sales" json:"total_sales"`
	TotalOrders   int     `bson:"total_orders" json:"total_orders"`
	AvgOrderValue float64 `bson:"avg_order_value" json:"avg_order_value"`
}
