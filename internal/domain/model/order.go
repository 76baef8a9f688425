package model

import "time"

// Order is one operational order record. The order id is derived from the
// customer, product and sale timestamp, which makes re-ingesting the same
// batch an idempotent upsert.
type Order struct {
	OrderID       string    `bson:"order_id" json:"order_id"`
	OrderDate     time.Time `bson:"order_date" json:"order_date"`
	CustomerID    int       `bson:"customer_id" json:"customer_id"`
	ProductID     int       `bson:"product_id" json:"product_id"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	PaymentMethod string    `bson:"payment_method" json:"payment_method"`
	ReviewScore   *float64  `bson:"review_score,omitempty" json:"review_score,omitempty"`
}
