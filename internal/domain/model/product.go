package model

// Product is one operational product record, keyed by product_id and
// replicated to both stores.
type Product struct {
	ProductID    int     `bson:"product_id" json:"product_id"`
	Name         string  `bson:"name" json:"name"`
	CategoryID   int     `bson:"category_id" json:"category_id"`
	CategoryName string  `bson:"category_name" json:"category_name"`
	Price        float64 `bson:"price" json:"price"`
}
