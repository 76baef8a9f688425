package usecase

import "github.com/shopspring/decimal"

// Currency values are floats rounded to two decimals on write; the math runs
// through decimals so rounding is exact.

func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// revenueFor computes quantity × price rounded to two decimals.
func revenueFor(quantity int, price float64) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// profitFor applies the fixed margin to a revenue value.
func profitFor(revenue, margin float64) float64 {
	return decimal.NewFromFloat(revenue).
		Mul(decimal.NewFromFloat(margin)).
		Round(2).
		InexactFloat64()
}
