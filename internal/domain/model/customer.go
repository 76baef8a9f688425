package model

// Customer is one operational customer record, keyed by customer_id and
// replicated to both stores. The latest row referencing the customer wins.
type Customer struct {
	CustomerID int    `bson:"customer_id" json:"customer_id"`
	Gender     string `bson:"gender" json:"gender"`
	Age        int    `bson:"age" json:"age"`
	City       string `bson:"city" json:"city"`
}
