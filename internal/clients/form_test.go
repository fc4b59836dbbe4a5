package clients

import (
	"encoding/json"
	"testing"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() RegistrationForm {
	return RegistrationForm{
		Cedula:          "1712345678",
		Nombre:          "Ana Pérez",
		Correo:          " Ana@Example.com ",
		Telefono:        "0991234567",
		Direccion:       "Av. Amazonas 123",
		Password:        "secreto",
		ConfirmPassword: "secreto",
	}
}

func details(t *testing.T, err error) any {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	return typed.Details()
}

func TestRegistrationFormValid(t *testing.T) {
	form := validRegistration()
	require.NoError(t, form.Validate())

	body, err := json.Marshal(form.ToInput())
	require.NoError(t, err)
	assert.JSONEq(t, `{"cedula":"1712345678","nombre":"Ana Pérez","correo":"ana@example.com","telefono":"0991234567","direccion":"Av. Amazonas 123","password":"secreto"}`, string(body))
}

func TestRegistrationFormErrors(t *testing.T) {
	form := RegistrationForm{
		Cedula:          "12-34",
		Nombre:          "Al",
		Correo:          "ana@",
		Telefono:        "099-123",
		Password:        "abc",
		ConfirmPassword: "abd",
	}
	assert.Equal(t, map[string]any{
		"cedula":          "must be a cedula (10 digits), RUC (13 digits) or passport (6-9 letters or digits)",
		"nombre":          "must be at least 3 characters",
		"correo":          "must be a valid email",
		"telefono":        "must be 10 digits",
		"direccion":       "is required",
		"password":        "must be at least 6 characters",
		"confirmPassword": "does not match",
	}, details(t, form.Validate()))
}

func TestIdentificationFormats(t *testing.T) {
	for _, cedula := range []string{"1712345678", "1790012345001", "AB1234", "A12345678"} {
		form := validRegistration()
		form.Cedula = cedula
		assert.NoError(t, form.Validate(), cedula)
	}
	for _, cedula := range []string{"12345", "17123456789", "AB-1234", "ABCDEFGHIJK"} {
		form := validRegistration()
		form.Cedula = cedula
		assert.Error(t, form.Validate(), cedula)
	}
}

func TestClientFormPasswordOnlyRequiredOnCreate(t *testing.T) {
	form := ClientForm{
		Cedula:    "1712345678",
		Nombre:    "Al",
		Correo:    "al@example.com",
		Telefono:  "0991234567",
		Direccion: "Quito",
		Password:  "   ",
	}
	assert.Equal(t, map[string]any{"password": "is required"}, details(t, form.ValidateCreate()))
	require.NoError(t, form.ValidateUpdate())

	body, err := json.Marshal(form.ToInput())
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")

	form.Password = "123"
	assert.Equal(t, map[string]any{"password": "must be at least 6 characters"}, details(t, form.ValidateUpdate()))
}
