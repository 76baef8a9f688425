package repository

// Collection names form the stable wire contract of the persisted state.
// Both stores carry the same set; only the review collections differ in
// membership because reviews are routed.
const (
	CollectionCustomers           = "customers"
	CollectionProducts            = "products"
	CollectionOrders              = "orders"
	CollectionSales               = "sales"
	CollectionLowReviews          = "low_reviews"
	CollectionHighReviews         = "high_reviews"
	CollectionSalesTrends         = "sales_trends"
	CollectionProductPerformance  = "product_performance"
	CollectionCategoryPerformance = "category_performance"
	CollectionDemographics        = "demographics"
	CollectionGeographicalInsight = "geographical_insights"
	CollectionCustomerBehavior    = "customer_behavior"
	CollectionPredictions         = "predictions"
	CollectionRawDataUploads      = "raw_data_uploads"
)
