package model

// ProductPerformance is the per-product aggregate. Exactly one product
// carries the best-selling flag and one the worst-selling flag; every product
// in the most profitable category carries the top-category flag.
type ProductPerformance struct {
	ProductID     int     `bson:"product_id" json:"product_id"`
	ProductName   string  `bson:"product_name" json:"product_name"`
	Category      string  `bson:"category" json:"category"`
	TotalQuantity int     `bson:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64 `bson:"total_revenue" json:"total_revenue"`
	AvgRevenue    float64 `bson:"avg_revenue" json:"avg_revenue"`
	BestSelling   bool    `bson:"best_selling" json:"best_selling"`
	WorstSelling  bool    `bson:"worst_selling" json:"worst_selling"`
	TopCategory   bool    `bson:"top_category" json:"top_category"`
}

// CategoryPerformance is the per-category aggregate. Exactly one category
// carries the highest-profit flag.
type CategoryPerformance struct {
	Category      string  `bson:"category" json:"category"`
	TotalQuantity int     `bson:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64 `bson:"total_revenue" json:"total_revenue"`
	AvgRevenue    float64 `bson:"avg_revenue" json:"avg_revenue"`
	TotalProfit   float64 `bson:"total_profit" json:"total_profit"`
	HighestProfit bool    `bson:"highest_profit" json:"highest_profit"`
}
