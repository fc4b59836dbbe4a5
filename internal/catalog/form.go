// Package catalog lists products for the storefront and validates and forwards the
// admin product forms.
package catalog

import (
	"strings"

	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/validation"
)

const defaultCategory = "General"

// ProductForm is the admin product form. Numeric fields are pointers so a missing
// value is told apart from zero.
type ProductForm struct {
	Code            string                     `json:"code" validate:"required"`
	Name            string                     `json:"name" validate:"required"`
	Description     string                     `json:"description"`
	Category        string                     `json:"category"`
	PricePerPound   *float64                   `json:"pricePerPound" validate:"required,gte=0.01"`
	WholesalePrice  *float64                   `json:"wholesalePrice" validate:"required,gt=0"`
	RetailPrice     *float64                   `json:"retailPrice" validate:"required,gt=0"`
	OriginCountry   string                     `json:"originCountry" validate:"required"`
	CurrentStock    *float64                   `json:"currentStock" validate:"required,gte=0"`
	MinStock        *float64                   `json:"minStock" validate:"omitempty,gte=0"`
	Status          string                     `json:"status" validate:"omitempty,oneof=active inactive"`
	ImageURL        string                     `json:"imageUrl" validate:"omitempty,url"`
	NutritionalInfo *kairosapi.NutritionalInfo `json:"nutritionalInfo"`
}

func (f *ProductForm) normalize() {
	f.Code = strings.TrimSpace(f.Code)
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	f.OriginCountry = strings.TrimSpace(f.OriginCountry)
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}

// Validate trims the form and reports every failing field at once.
func (f *ProductForm) Validate() error {
	f.normalize()
	return validation.Result("invalid product", validation.Struct(f))
}

// ToInput maps a validated form onto the backend body, filling category and status defaults.
func (f *ProductForm) ToInput() kairosapi.ProductInput {
	input := kairosapi.ProductInput{
		Code:            f.Code,
		Name:            f.Name,
		Description:     f.Description,
		Category:        f.Category,
		OriginCountry:   f.OriginCountry,
		Status:          f.Status,
		ImageURL:        f.ImageURL,
		NutritionalInfo: f.NutritionalInfo,
	}
	if input.Category == "" {
		input.Category = defaultCategory
	}
	if input.Status == "" {
		input.Status = enums.ProductStatusActive.String()
	}
	input.PricePerPound = deref(f.PricePerPound)
	input.WholesalePrice = deref(f.WholesalePrice)
	input.RetailPrice = deref(f.RetailPrice)
	input.CurrentStock = deref(f.CurrentStock)
	input.MinStock = deref(f.MinStock)
	return input
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
