package model

// Customer segments, ordered from most to least engaged.
const (
	SegmentVIP        = "VIP"
	SegmentRegular    = "Regular"
	SegmentOccasional = "Occasional"
)

// CustomerBehavior is the per-customer purchasing aggregate. Frequency is
// purchases per month over the span of the customer's sales in the frame.
type CustomerBehavior struct {
	CustomerID     int     `bson:"customer_id" json:"customer_id"`
	TotalPurchases int     `bson:"total_purchases" json:"total_purchases"`
	TotalSpent     float64 `bson:"total_spent" json:"total_spent"`
	Frequency      float64 `bson:"frequency" json:"frequency"`
	Segment        string  `bson:"segment" json:"segment"`
}

// SegmentFor applies the segmentation rules in order.
func SegmentFor(totalSpent, frequency float64) string {
	switch {
	case totalSpent > 1000 || frequency >= 2:
		return SegmentVIP
	case totalSpent > 500 || frequency >= 1:
		return SegmentRegular
	default:
		return SegmentOccasional
	}
}
