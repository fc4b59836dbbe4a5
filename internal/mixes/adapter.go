// Package mixes turns the working selection into saved mixes and saved mixes back
// into selections, whatever shape the stored ingredients arrive in.
package mixes

import (
	"fmt"
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/quantity"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
)

const stubIDPrefix = "unresolved-"

// Ingredient is the canonical form of a stored mix ingredient.
type Ingredient struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Quantity     float64 `json:"quantity"`
	Resolved     bool    `json:"resolved"`
}

// ToSavePayload builds the body of POST /mixes. Only ids and weights are sent; the
// backend re-resolves prices at save time.
func ToSavePayload(name string, set *selection.Set) (kairosapi.CreateMixRequest, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return kairosapi.CreateMixRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "mix name is required").
			WithDetails(map[string]any{"name": "is required"})
	}
	if set == nil || set.IsEmpty() {
		return kairosapi.CreateMixRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "mix has no products")
	}

	items := set.Items()
	ingredients := make([]kairosapi.MixIngredientInput, 0, len(items))
	for _, item := range items {
		ingredients = append(ingredients, kairosapi.MixIngredientInput{
			ProductID:   item.Product.ID,
			QuantityLbs: item.Quantity,
		})
	}
	return kairosapi.CreateMixRequest{Name: trimmed, Ingredients: ingredients}, nil
}

// Normalize maps a stored ingredient onto its canonical form. index positions the
// ingredient in its mix and names the stub id of an unresolvable reference.
func Normalize(ingredient kairosapi.MixIngredient, index int) Ingredient {
	refs := []ProductRef{
		ParseProductRef(ingredient.Product),
		ParseProductRef(ingredient.ProductID),
		ParseProductRef(ingredient.ID),
	}

	var id string
	var snapshot *ProductRef
	for i := range refs {
		if id == "" && refs[i].Resolved() {
			id = refs[i].ID
		}
		if snapshot == nil && refs[i].Kind == RefSnapshot {
			snapshot = &refs[i]
		}
	}

	out := Ingredient{ProductID: id, Resolved: id != ""}
	if !out.Resolved {
		out.ProductID = fmt.Sprintf("%s%d", stubIDPrefix, index)
	}

	out.Name = firstNonBlank(ingredient.ProductName, ingredient.Name)
	if out.Name == "" && snapshot != nil {
		out.Name = snapshot.Name
	}
	if out.Name == "" {
		out.Name = selection.PlaceholderName
	}

	if price, ok := toNumber(ingredient.PriceAtMoment); ok {
		out.PricePerUnit = price
	} else if price, ok := toNumber(ingredient.PricePerPound); ok {
		out.PricePerUnit = price
	} else if snapshot != nil && snapshot.Price != nil {
		out.PricePerUnit = *snapshot.Price
	}

	switch {
	case ingredient.QuantityLbs != nil:
		out.Quantity = quantity.Clamp(ingredient.QuantityLbs)
	case ingredient.Quantity != nil:
		out.Quantity = quantity.Clamp(ingredient.Quantity)
	default:
		out.Quantity = quantity.Clamp(quantity.Default)
	}

	return out
}

// NormalizeAll normalizes a mix's ingredients in stored order.
func NormalizeAll(mix kairosapi.Mix) []Ingredient {
	out := make([]Ingredient, 0, len(mix.Ingredients))
	for i, ingredient := range mix.Ingredients {
		out = append(out, Normalize(ingredient, i))
	}
	return out
}

// FromSavedMix rebuilds a selection from a saved mix. Ingredients resolving to the
// same product are merged by summing their weights.
func FromSavedMix(mix kairosapi.Mix) *selection.Set {
	return selection.FromItems(toItems(NormalizeAll(mix)))
}

func toItems(ingredients []Ingredient) []selection.Item {
	items := make([]selection.Item, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, selection.Item{
			Product: selection.Product{
				ID:           ing.ProductID,
				Name:         ing.Name,
				PricePerUnit: ing.PricePerUnit,
			},
			Quantity: ing.Quantity,
		})
	}
	return items
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
