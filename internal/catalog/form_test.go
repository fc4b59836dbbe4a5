package catalog

import (
	"testing"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func validForm() ProductForm {
	return ProductForm{
		Code:           " ALM-01 ",
		Name:           "Almendras",
		PricePerPound:  ptr(3.5),
		WholesalePrice: ptr(3),
		RetailPrice:    ptr(4),
		OriginCountry:  "Ecuador",
		CurrentStock:   ptr(0),
	}
}

func TestProductFormDefaults(t *testing.T) {
	form := validForm()
	require.NoError(t, form.Validate())

	input := form.ToInput()
	assert.Equal(t, "ALM-01", input.Code)
	assert.Equal(t, "General", input.Category)
	assert.Equal(t, "active", input.Status)
	assert.Equal(t, 0.0, input.CurrentStock)
	assert.Equal(t, 0.0, input.MinStock)
	assert.Equal(t, 3.5, input.PricePerPound)
}

func TestProductFormReportsEveryField(t *testing.T) {
	form := ProductForm{
		Name:           "  ",
		PricePerPound:  ptr(0.001),
		WholesalePrice: ptr(0),
		RetailPrice:    ptr(-1),
		CurrentStock:   ptr(-2),
		MinStock:       ptr(-1),
		Status:         "archived",
		ImageURL:       "not a url",
	}
	err := form.Validate()
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]any{
		"code":           "is required",
		"name":           "is required",
		"pricePerPound":  "must be at least 0.01",
		"wholesalePrice": "must be greater than 0",
		"retailPrice":    "must be greater than 0",
		"originCountry":  "is required",
		"currentStock":   "must be at least 0",
		"minStock":       "must be at least 0",
		"status":         "must be one of active, inactive",
		"imageUrl":       "must be a valid url",
	}, typed.Details())
}

func TestProductFormRequiresPrices(t *testing.T) {
	form := validForm()
	form.PricePerPound = nil
	form.CurrentStock = nil

	typed := pkgerrors.As(form.Validate())
	require.NotNil(t, typed)
	assert.Equal(t, map[string]any{
		"pricePerPound": "is required",
		"currentStock":  "is required",
	}, typed.Details())
}
