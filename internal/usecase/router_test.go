package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
)

func TestRouteReview(t *testing.T) {
	t.Run("scores below four go to the low store", func(t *testing.T) {
		assert.Equal(t, repository.StoreLow, usecase.RouteReview(0))
		assert.Equal(t, repository.StoreLow, usecase.RouteReview(2.5))
		assert.Equal(t, repository.StoreLow, usecase.RouteReview(3.99))
	})

	t.Run("scores at or above four go to the high store", func(t *testing.T) {
		assert.Equal(t, repository.StoreHigh, usecase.RouteReview(4))
		assert.Equal(t, repository.StoreHigh, usecase.RouteReview(4.01))
		assert.Equal(t, repository.StoreHigh, usecase.RouteReview(5))
	})

	t.Run("out of range scores use the same comparison", func(t *testing.T) {
		assert.Equal(t, repository.StoreLow, usecase.RouteReview(-1))
		assert.Equal(t, repository.StoreHigh, usecase.RouteReview(9.5))
	})
}

func TestSentimentLabel(t *testing.T) {
	assert.Equal(t, model.SentimentPositive, usecase.SentimentLabel(4))
	assert.Equal(t, model.SentimentPositive, usecase.SentimentLabel(5))
	assert.Equal(t, model.SentimentNeutral, usecase.SentimentLabel(3))
	assert.Equal(t, model.SentimentNeutral, usecase.SentimentLabel(2.5))
	assert.Equal(t, model.SentimentNegative, usecase.SentimentLabel(2))
	assert.Equal(t, model.SentimentNegative, usecase.SentimentLabel(0))
}
