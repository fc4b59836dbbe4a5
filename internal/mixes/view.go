package mixes

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/money"
)

// MixView is a saved mix with its display fields derived.
type MixView struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	IngredientCount    int          `json:"ingredientCount"`
	Ingredients        []Ingredient `json:"ingredients"`
	TotalPrice         float64      `json:"totalPrice"`
	TotalWeight        float64      `json:"totalWeight"`
	TotalPriceDisplay  string       `json:"totalPriceDisplay"`
	TotalWeightDisplay string       `json:"totalWeightDisplay"`
	ClientName         string       `json:"clientName,omitempty"`
	ClientEmail        string       `json:"clientEmail,omitempty"`
	CreatedAt          string       `json:"createdAt,omitempty"`
}

// NewMixView prefers the totals stored with the mix and falls back to the ones
// derived from its normalized ingredients.
func NewMixView(mix kairosapi.Mix) MixView {
	ingredients := NormalizeAll(mix)
	derived := selection.ComputeTotals(toItems(ingredients))

	price := derived.Price
	if mix.TotalPrice != nil {
		price = *mix.TotalPrice
	}
	weight := derived.Weight
	if mix.TotalWeight != nil {
		weight = *mix.TotalWeight
	}

	name, email := clientIdentity(mix.Client)
	return MixView{
		ID:                 mix.ID,
		Name:               mix.Name,
		IngredientCount:    len(mix.Ingredients),
		Ingredients:        ingredients,
		TotalPrice:         money.Round2(price).InexactFloat64(),
		TotalWeight:        money.Round2(weight).InexactFloat64(),
		TotalPriceDisplay:  money.Fixed2(price),
		TotalWeightDisplay: money.Fixed2(weight),
		ClientName:         name,
		ClientEmail:        email,
		CreatedAt:          mix.CreatedAt,
	}
}

func NewMixViews(mixes []kairosapi.Mix) []MixView {
	out := make([]MixView, 0, len(mixes))
	for _, mix := range mixes {
		out = append(out, NewMixView(mix))
	}
	return out
}

// clientIdentity reads the owner of a mix when the backend populated it.
func clientIdentity(raw json.RawMessage) (string, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", ""
	}
	var owner struct {
		Nombre string `json:"nombre"`
		Name   string `json:"name"`
		Correo string `json:"correo"`
		Email  string `json:"email"`
	}
	if err := json.Unmarshal(trimmed, &owner); err != nil {
		return "", ""
	}
	return firstNonBlank(owner.Nombre, owner.Name), firstNonBlank(owner.Correo, owner.Email)
}

// FilterViews keeps the mixes whose name or owner contains query, case-insensitively.
func FilterViews(views []MixView, query string) []MixView {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return views
	}
	out := make([]MixView, 0, len(views))
	for _, v := range views {
		for _, field := range []string{v.Name, v.ClientName, v.ClientEmail} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// OrderDraft seeds the order modal from a saved mix.
type OrderDraft struct {
	MixID              string       `json:"mixId"`
	MixName            string       `json:"mixName"`
	Items              []Ingredient `json:"items"`
	TotalPrice         float64      `json:"totalPrice"`
	TotalWeight        float64      `json:"totalWeight"`
	TotalPriceDisplay  string       `json:"totalPriceDisplay"`
	TotalWeightDisplay string       `json:"totalWeightDisplay"`
}

func NewOrderDraft(mix kairosapi.Mix) OrderDraft {
	set := FromSavedMix(mix)
	items := set.Items()
	totals := selection.ComputeTotals(items)

	resolved := map[string]bool{}
	for _, ing := range NormalizeAll(mix) {
		resolved[ing.ProductID] = ing.Resolved
	}

	lines := make([]Ingredient, 0, len(items))
	for _, item := range items {
		lines = append(lines, Ingredient{
			ProductID:    item.Product.ID,
			Name:         item.Product.Name,
			PricePerUnit: item.Product.PricePerUnit,
			Quantity:     item.Quantity,
			Resolved:     resolved[item.Product.ID],
		})
	}

	return OrderDraft{
		MixID:              mix.ID,
		MixName:            mix.Name,
		Items:              lines,
		TotalPrice:         money.Round2(totals.Price).InexactFloat64(),
		TotalWeight:        money.Round2(totals.Weight).InexactFloat64(),
		TotalPriceDisplay:  totals.PriceDisplay(),
		TotalWeightDisplay: totals.WeightDisplay(),
	}
}
