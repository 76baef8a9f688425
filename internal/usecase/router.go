package usecase

import (
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// reviewThreshold splits reviews between the two stores. Scores outside the
// nominal [0,5] range are routed by the same comparison, no clamp.
const reviewThreshold = 4.0

// RouteReview decides which store a review lands in. It is a pure function;
// callers apply it before dispatching inserts.
func RouteReview(score float64) repository.StoreName {
	if score < reviewThreshold {
		return repository.StoreLow
	}
	return repository.StoreHigh
}

// SentimentLabel derives the sentiment label from a review score.
func SentimentLabel(score float64) string {
	switch {
	case score >= 4:
		return model.SentimentPositive
	case score <= 2:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
