package model

import "time"

// Sale is one operational sale record derived from an order. Revenue and
// profit are computed at extraction time and rounded to two decimals.
type Sale struct {
	ID         string    `bson:"id" json:"id"`
	CustomerID int       `bson:"customer_id" json:"customer_id"`
	ProductID  int       `bson:"product_id" json:"product_id"`
	Quantity   int       `bson:"quantity" json:"quantity"`
	SaleDate   time.Time `bson:"sale_date" json:"sale_date"`
	Revenue    float64   `bson:"revenue" json:"revenue"`
	Profit     float64   `bson:"profit" json:"profit"`
	City       string    `bson:"city" json:"city"`
}
