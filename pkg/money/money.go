// Package money rounds the float accumulations of the mix engine for display.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two decimals. Non-finite input yields zero.
func Round2(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value).Round(2)
}

// Fixed2 renders a value with exactly two decimals ("11.00").
func Fixed2(value float64) string {
	return Round2(value).StringFixed(2)
}

// Format renders a monetary amount with a dollar sign ("$11.00", "-$3.50").
func Format(value float64) string {
	rounded := Round2(value)
	if rounded.IsNegative() {
		return "-$" + rounded.Abs().StringFixed(2)
	}
	return "$" + rounded.StringFixed(2)
}

// FormatLbs renders a weight in pounds ("3.60 lbs").
func FormatLbs(value float64) string {
	return Fixed2(value) + " lbs"
}
