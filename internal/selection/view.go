package selection

import (
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/money"
)

// ItemView is an item as shown in the mix panel.
type ItemView struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Stock        float64 `json:"stock"`
	Quantity     float64 `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// View is the selection together with its freshly computed totals.
type View struct {
	Items              []ItemView `json:"items"`
	Count              int        `json:"count"`
	TotalPrice         float64    `json:"totalPrice"`
	TotalWeight        float64    `json:"totalWeight"`
	TotalPriceDisplay  string     `json:"totalPriceDisplay"`
	TotalWeightDisplay string     `json:"totalWeightDisplay"`
}

func NewView(set *Set) View {
	if set == nil {
		set = NewSet()
	}
	items := set.Items()
	totals := ComputeTotals(items)

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		line := ComputeTotals([]Item{item})
		views = append(views, ItemView{
			ProductID:    item.Product.ID,
			Name:         item.Product.Name,
			PricePerUnit: item.Product.PricePerUnit,
			Stock:        item.Product.Stock,
			Quantity:     item.Quantity,
			Subtotal:     money.Round2(line.Price).InexactFloat64(),
		})
	}

	return View{
		Items:              views,
		Count:              len(views),
		TotalPrice:         money.Round2(totals.Price).InexactFloat64(),
		TotalWeight:        money.Round2(totals.Weight).InexactFloat64(),
		TotalPriceDisplay:  totals.PriceDisplay(),
		TotalWeightDisplay: totals.WeightDisplay(),
	}
}

// ProductFromAPI maps a catalog product onto what the selection tracks.
func ProductFromAPI(p kairosapi.Product) Product {
	return Product{
		ID:           p.ID,
		Name:         p.Name,
		PricePerUnit: p.PricePerPound,
		Stock:        p.CurrentStock,
	}
}
