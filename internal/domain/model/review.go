package model

import "time"

// Sentiment labels derived from the review score.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Review is one review record. Unlike every other entity, a review lives in
// exactly one store: scores below 4 land in the low store, everything else in
// the high store. Reviews are insert-only.
type Review struct {
	ID          string    `bson:"id" json:"id"`
	CustomerID  int       `bson:"customer_id" json:"customer_id"`
	ProductID   int       `bson:"product_id" json:"product_id"`
	ReviewScore float64   `bson:"review_score" json:"review_score"`
	Sentiment   string    `bson:"sentiment" json:"sentiment"`
	Text        string    `bson:"text" json:"text"`
	Date        time.Time `bson:"date" json:"date"`
}
