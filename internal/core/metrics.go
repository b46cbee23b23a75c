package core

import "github.com/shopspring/decimal"

// Rate returns count/per rounded half-up to the given number of decimal
// places. A non-positive divisor yields zero.
func Rate(count, per float64, places int32) float64 {
	if per <= 0 {
		return 0
	}
	q := decimal.NewFromFloat(count).Div(decimal.NewFromFloat(per)).Round(places)
	f, _ := q.Float64()
	return f
}

// Percent returns part/whole*100 rounded to a whole number, or fallback
// when whole is zero.
func Percent(part, whole, fallback float64) float64 {
	if whole <= 0 {
		return fallback
	}
	return Rate(part*100, whole, 0)
}
