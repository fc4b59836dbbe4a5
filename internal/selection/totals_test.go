package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalWeightSumsQuantities(t *testing.T) {
	set := NewSet()
	set.Toggle(almonds)
	set.Toggle(cashews)
	set.Toggle(raisins)
	set.SetQuantity("p-a", 1.0)
	set.SetQuantity("p-b", 2.5)
	set.SetQuantity("p-c", 0.1)

	totals := ComputeTotals(set.Items())

	assert.InDelta(t, 3.6, totals.Weight, 1e-9)
	assert.Equal(t, "3.60", totals.WeightDisplay())
}

func TestTotalPriceSumsPriceTimesQuantity(t *testing.T) {
	items := []Item{
		{Product: Product{ID: "x", PricePerUnit: 2.00}, Quantity: 1.0},
		{Product: Product{ID: "y", PricePerUnit: 4.50}, Quantity: 2.0},
	}

	totals := ComputeTotals(items)

	assert.InDelta(t, 11.00, totals.Price, 1e-9)
	assert.Equal(t, "11.00", totals.PriceDisplay())
}

func TestMissingOrInvalidPriceCountsAsZero(t *testing.T) {
	items := []Item{
		{Product: Product{ID: "a"}, Quantity: 2},
		{Product: Product{ID: "b", PricePerUnit: -1}, Quantity: 1},
		{Product: Product{ID: "c", PricePerUnit: math.NaN()}, Quantity: 1},
		{Product: Product{ID: "d", PricePerUnit: 1.5}, Quantity: 2},
	}

	totals := ComputeTotals(items)

	assert.InDelta(t, 3.0, totals.Price, 1e-9)
	assert.InDelta(t, 6.0, totals.Weight, 1e-9)
}

func TestEmptyTotals(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Equal(t, "0.00", totals.PriceDisplay())
	assert.Equal(t, "0.00", totals.WeightDisplay())
}

func TestScenarioTwoProducts(t *testing.T) {
	set := NewSet()
	set.Toggle(Product{ID: "A", Name: "A", PricePerUnit: 3.00})
	set.Toggle(Product{ID: "B", Name: "B", PricePerUnit: 5.00})
	set.SetQuantity("A", 2)

	totals := ComputeTotals(set.Items())

	assert.InDelta(t, 3.0, totals.Weight, 1e-9)
	assert.InDelta(t, 11.0, totals.Price, 1e-9)
	assert.Equal(t, "11.00", totals.PriceDisplay())
}

func TestNewViewRoundsForDisplay(t *testing.T) {
	set := NewSet()
	set.Toggle(Product{ID: "A", Name: "A", PricePerUnit: 3.333})
	set.SetQuantity("A", 1.5)

	view := NewView(set)

	assert.Equal(t, 1, view.Count)
	assert.Equal(t, 5.0, view.TotalPrice)
	assert.Equal(t, "5.00", view.TotalPriceDisplay)
	assert.Equal(t, "1.50", view.TotalWeightDisplay)
	assert.Equal(t, 5.0, view.Items[0].Subtotal)
	assert.Empty(t, NewView(nil).Items)
}
