package model

import "time"

// Prediction types emitted per ingest.
const (
	PredictionTopProduct = "future_top_product"
	PredictionSalesTrend = "future_sales_trend"
)

// Prediction is one forward-looking record for the next calendar quarter,
// keyed by (prediction_type, prediction_period).
type Prediction struct {
	PredictionType   string                 `bson:"prediction_type" json:"prediction_type"`
	PredictionPeriod string                 `bson:"prediction_period" json:"prediction_period"`
	PredictedValue   interface{}            `bson:"predicted_value" json:"predicted_value"`
	Details          map[string]interface{} `bson:"details" json:"details"`
	Model            string                 `bson:"model" json:"model"`
	GeneratedAt      time.Time              `bson:"generated_at" json:"generated_at"`
}
