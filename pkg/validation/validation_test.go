package validation

import (
	"errors"
	"testing"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name     string   `json:"name" validate:"required,min=3"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"phone10"`
	ID       string   `json:"cedula" validate:"identification"`
	Price    *float64 `json:"price" validate:"required,gt=0"`
	Password string   `json:"password" validate:"min=6"`
	Confirm  string   `json:"confirmPassword" validate:"eqfield=Password"`
}

func TestStructCollectsEveryField(t *testing.T) {
	zero := 0.0
	err := Struct(sampleForm{Name: "Al", Email: "nope", Phone: "12", ID: "12-34", Price: &zero, Password: "abc", Confirm: "abd"})
	require.Error(t, err)

	result := Result("invalid form", err)
	typed := pkgerrors.As(result)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]any{
		"name":            "must be at least 3 characters",
		"email":           "must be a valid email",
		"phone":           "must be 10 digits",
		"cedula":          "must be a cedula (10 digits), RUC (13 digits) or passport (6-9 letters or digits)",
		"price":           "must be greater than 0",
		"password":        "must be at least 6 characters",
		"confirmPassword": "does not match",
	}, typed.Details())
}

func TestStructAcceptsValidForm(t *testing.T) {
	price := 2.5
	err := Struct(sampleForm{Name: "Ana", Email: "ana@example.com", Phone: "0991234567", ID: "1790012345001", Price: &price, Password: "secret", Confirm: "secret"})
	assert.NoError(t, err)
	assert.NoError(t, Result("invalid form", err))
}

func TestRequiredPointer(t *testing.T) {
	err := Struct(sampleForm{Name: "Ana", Email: "ana@example.com", Phone: "0991234567", ID: "AB12345", Password: "secret", Confirm: "secret"})
	typed := pkgerrors.As(Result("invalid form", err))
	require.NotNil(t, typed)
	assert.Equal(t, map[string]any{"price": "is required"}, typed.Details())
}

func TestResultMergesManualFieldErrors(t *testing.T) {
	result := Result("invalid form", Field("a", "first"), nil, Field("a", "second"), Field("b", "other"))
	typed := pkgerrors.As(result)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]any{"a": "first", "b": "other"}, typed.Details())
}

func TestResultWrapsForeignErrors(t *testing.T) {
	result := Result("invalid form", errors.New("boom"))
	assert.True(t, pkgerrors.IsCode(result, pkgerrors.CodeValidation))
	assert.Nil(t, Result("invalid form"))
}
