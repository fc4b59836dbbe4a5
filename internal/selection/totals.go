package selection

import (
	"math"

	"github.com/mt-arl/kairosMIxFront/pkg/money"
)

// Totals are accumulated unrounded; rounding happens only for display.
type Totals struct {
	Price  float64
	Weight float64
}

// ComputeTotals sums price and weight over items. A negative or non-finite price counts as zero.
func ComputeTotals(items []Item) Totals {
	var totals Totals
	for _, item := range items {
		price := item.Product.PricePerUnit
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			price = 0
		}
		totals.Price += price * item.Quantity
		totals.Weight += item.Quantity
	}
	return totals
}

func (t Totals) PriceDisplay() string {
	return money.Fixed2(t.Price)
}

func (t Totals) WeightDisplay() string {
	return money.Fixed2(t.Weight)
}
