package catalog

import (
	"strings"

	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/money"
)

// ProductView is a product as listed in the catalog and the admin table.
type ProductView struct {
	ID                   string                     `json:"id"`
	Code                 string                     `json:"code"`
	Name                 string                     `json:"name"`
	Description          string                     `json:"description,omitempty"`
	Category             string                     `json:"category"`
	PricePerPound        float64                    `json:"pricePerPound"`
	PricePerPoundDisplay string                     `json:"pricePerPoundDisplay"`
	WholesalePrice       float64                    `json:"wholesalePrice"`
	RetailPrice          float64                    `json:"retailPrice"`
	OriginCountry        string                     `json:"originCountry,omitempty"`
	CurrentStock         float64                    `json:"currentStock"`
	MinStock             float64                    `json:"minStock"`
	LowStock             bool                       `json:"lowStock"`
	Status               string                     `json:"status"`
	Active               bool                       `json:"active"`
	ImageURL             string                     `json:"imageUrl,omitempty"`
	NutritionalInfo      *kairosapi.NutritionalInfo `json:"nutritionalInfo,omitempty"`
	Selected             bool                       `json:"selected"`
}

func NewProductView(p kairosapi.Product) ProductView {
	category := strings.TrimSpace(p.Category)
	if category == "" {
		category = defaultCategory
	}
	return ProductView{
		ID:                   p.ID,
		Code:                 p.Code,
		Name:                 p.Name,
		Description:          p.Description,
		Category:             category,
		PricePerPound:        p.PricePerPound,
		PricePerPoundDisplay: money.Format(p.PricePerPound),
		WholesalePrice:       p.WholesalePrice,
		RetailPrice:          p.RetailPrice,
		OriginCountry:        p.OriginCountry,
		CurrentStock:         p.CurrentStock,
		MinStock:             p.MinStock,
		LowStock:             p.CurrentStock <= p.MinStock,
		Status:               p.Status,
		Active:               isActive(p),
		ImageURL:             p.ImageURL,
		NutritionalInfo:      p.NutritionalInfo,
	}
}

func isActive(p kairosapi.Product) bool {
	if p.IsActive != nil {
		return *p.IsActive
	}
	return !strings.EqualFold(strings.TrimSpace(p.Status), "inactive")
}

// NewProductViews maps products in order; selected marks the ones in the caller's
// working selection and may be nil.
func NewProductViews(products []kairosapi.Product, selected *selection.Set) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		view := NewProductView(p)
		view.Selected = selected != nil && selected.IsSelected(p.ID)
		out = append(out, view)
	}
	return out
}

// Filter keeps products whose name or category contains query, case-insensitively.
func Filter(views []ProductView, query string) []ProductView {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return views
	}
	out := make([]ProductView, 0, len(views))
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Name), needle) || strings.Contains(strings.ToLower(v.Category), needle) {
			out = append(out, v)
		}
	}
	return out
}
