package clients

import (
	"strings"

	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
)

// ClientView is a client record as shown in the admin table.
type ClientView struct {
	ID                 string                   `json:"id"`
	Cedula             string                   `json:"cedula"`
	IdentificationKind enums.IdentificationKind `json:"identificationKind,omitempty"`
	Nombre             string                   `json:"nombre"`
	Correo             string                   `json:"correo"`
	Telefono           string                   `json:"telefono"`
	Direccion          string                   `json:"direccion"`
	Active             bool                     `json:"active"`
}

func NewClientView(c kairosapi.Customer) ClientView {
	kind, _ := enums.ClassifyIdentification(c.Cedula)
	return ClientView{
		ID:                 c.ID,
		Cedula:             c.Cedula,
		IdentificationKind: kind,
		Nombre:             c.Nombre,
		Correo:             c.Correo,
		Telefono:           c.Telefono,
		Direccion:          c.Direccion,
		Active:             c.IsActive == nil || *c.IsActive,
	}
}

func NewClientViews(clients []kairosapi.Customer) []ClientView {
	out := make([]ClientView, 0, len(clients))
	for _, c := range clients {
		out = append(out, NewClientView(c))
	}
	return out
}

// Search matches name and email case-insensitively and cedula and phone as typed.
func Search(views []ClientView, query string) []ClientView {
	raw := strings.TrimSpace(query)
	if raw == "" {
		return views
	}
	needle := strings.ToLower(raw)
	out := make([]ClientView, 0, len(views))
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Nombre), needle) ||
			strings.Contains(v.Cedula, raw) ||
			strings.Contains(strings.ToLower(v.Correo), needle) ||
			strings.Contains(v.Telefono, raw) {
			out = append(out, v)
		}
	}
	return out
}
