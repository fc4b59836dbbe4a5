// Package clients validates customer registration and the admin client forms, and
// forwards client records to the backend.
package clients

import (
	"strings"

	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/mt-arl/kairosMIxFront/pkg/validation"
)

// RegistrationForm is the self-service sign-up form.
type RegistrationForm struct {
	Cedula          string `json:"cedula" validate:"required,identification"`
	Nombre          string `json:"nombre" validate:"required,min=3"`
	Correo          string `json:"correo" validate:"required,email"`
	Telefono        string `json:"telefono" validate:"required,phone10"`
	Direccion       string `json:"direccion" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (f *RegistrationForm) Validate() error {
	f.Cedula = strings.TrimSpace(f.Cedula)
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Correo = strings.ToLower(strings.TrimSpace(f.Correo))
	f.Telefono = strings.TrimSpace(f.Telefono)
	f.Direccion = strings.TrimSpace(f.Direccion)
	if strings.TrimSpace(f.Password) == "" {
		f.Password = ""
	}
	return validation.Result("invalid registration", validation.Struct(f))
}

// ToInput drops the confirmation before the form leaves the gateway.
func (f *RegistrationForm) ToInput() kairosapi.ClientInput {
	return kairosapi.ClientInput{
		Cedula:    f.Cedula,
		Nombre:    f.Nombre,
		Correo:    f.Correo,
		Telefono:  f.Telefono,
		Direccion: f.Direccion,
		Password:  f.Password,
	}
}

// ClientForm is the admin create and edit form. The password is required on create
// only; an empty password on edit leaves it unchanged.
type ClientForm struct {
	Cedula    string `json:"cedula" validate:"required,identification"`
	Nombre    string `json:"nombre" validate:"required"`
	Correo    string `json:"correo" validate:"required,email"`
	Telefono  string `json:"telefono" validate:"required,phone10"`
	Direccion string `json:"direccion" validate:"required"`
	Password  string `json:"password" validate:"omitempty,min=6"`
}

func (f *ClientForm) normalize() {
	f.Cedula = strings.TrimSpace(f.Cedula)
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Correo = strings.ToLower(strings.TrimSpace(f.Correo))
	f.Telefono = strings.TrimSpace(f.Telefono)
	f.Direccion = strings.TrimSpace(f.Direccion)
	if strings.TrimSpace(f.Password) == "" {
		f.Password = ""
	}
}

// ValidateCreate checks the form for a new client.
func (f *ClientForm) ValidateCreate() error {
	f.normalize()
	errs := []error{validation.Struct(f)}
	if f.Password == "" {
		errs = append(errs, validation.Field("password", "is required"))
	}
	return validation.Result("invalid client", errs...)
}

// ValidateUpdate checks the form for an existing client.
func (f *ClientForm) ValidateUpdate() error {
	f.normalize()
	return validation.Result("invalid client", validation.Struct(f))
}

func (f *ClientForm) ToInput() kairosapi.ClientInput {
	return kairosapi.ClientInput{
		Cedula:    f.Cedula,
		Nombre:    f.Nombre,
		Correo:    f.Correo,
		Telefono:  f.Telefono,
		Direccion: f.Direccion,
		Password:  f.Password,
	}
}
