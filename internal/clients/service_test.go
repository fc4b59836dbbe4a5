package clients

import (
	"context"
	"testing"

	"github.com/mt-arl/kairosMIxFront/internal/session"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientAPI struct {
	clients     []kairosapi.Customer
	registered  []kairosapi.ClientInput
	created     []kairosapi.ClientInput
	updated     map[string]kairosapi.ClientInput
	deactivated []string
	registerErr error
}

func (f *fakeClientAPI) RegisterClient(_ context.Context, input kairosapi.ClientInput) (*kairosapi.Customer, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, input)
	return &kairosapi.Customer{ID: "c-new", Nombre: input.Nombre, Correo: input.Correo, Cedula: input.Cedula}, nil
}

func (f *fakeClientAPI) ListClients(context.Context) ([]kairosapi.Customer, error) {
	return f.clients, nil
}

func (f *fakeClientAPI) GetClient(_ context.Context, id string) (*kairosapi.Customer, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Cliente no encontrado")
}

func (f *fakeClientAPI) CreateClient(_ context.Context, input kairosapi.ClientInput) (*kairosapi.Customer, error) {
	f.created = append(f.created, input)
	return &kairosapi.Customer{ID: "c-admin", Nombre: input.Nombre}, nil
}

func (f *fakeClientAPI) UpdateClient(_ context.Context, id string, input kairosapi.ClientInput) (*kairosapi.Customer, error) {
	if f.updated == nil {
		f.updated = map[string]kairosapi.ClientInput{}
	}
	f.updated[id] = input
	return &kairosapi.Customer{ID: id, Nombre: input.Nombre}, nil
}

func (f *fakeClientAPI) DeactivateClient(_ context.Context, id string) (*kairosapi.Customer, error) {
	f.deactivated = append(f.deactivated, id)
	inactive := false
	return &kairosapi.Customer{ID: id, IsActive: &inactive}, nil
}

type fakeGuard struct {
	acquired []string
}

func (g *fakeGuard) Acquire(_ context.Context, scope, action string) (func(), error) {
	g.acquired = append(g.acquired, scope+":"+action)
	return func() {}, nil
}

var adminSession = &session.Session{ID: "adm", Token: "tok", Role: enums.UserRoleAdmin}

func newTestService(t *testing.T) (Service, *fakeClientAPI, *fakeGuard) {
	t.Helper()
	api := &fakeClientAPI{clients: []kairosapi.Customer{
		{ID: "c1", Cedula: "1712345678", Nombre: "Ana Pérez", Correo: "ana@example.com", Telefono: "0991234567"},
		{ID: "c2", Cedula: "1790012345001", Nombre: "Comercial Luis", Correo: "ventas@luis.ec", Telefono: "0987654321"},
	}}
	guard := &fakeGuard{}
	svc, err := NewService(ServiceParams{API: api, Guard: guard})
	require.NoError(t, err)
	return svc, api, guard
}

func TestRegisterValidatesBeforeForwarding(t *testing.T) {
	svc, api, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegistrationForm{Nombre: "Ana"})
	require.Error(t, err)
	assert.Empty(t, api.registered)

	view, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "c-new", view.ID)
	assert.Equal(t, enums.IdentificationCedula, view.IdentificationKind)
	require.Len(t, api.registered, 1)
	assert.Equal(t, "ana@example.com", api.registered[0].Correo)
}

func TestRegisterSurfacesBackendMessage(t *testing.T) {
	svc, api, _ := newTestService(t)
	api.registerErr = pkgerrors.New(pkgerrors.CodeUpstream, "El correo ya está registrado")

	_, err := svc.Register(context.Background(), validRegistration())
	require.Error(t, err)
	assert.Equal(t, "El correo ya está registrado", pkgerrors.As(err).Message())
}

func TestListSearchesEveryField(t *testing.T) {
	svc, _, _ := newTestService(t)
	cases := map[string]string{
		"pérez":       "c1",
		"17900":       "c2",
		"VENTAS@":     "c2",
		"0991":        "c1",
		"comercial l": "c2",
	}
	for query, want := range cases {
		got, err := svc.List(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, got, 1, query)
		assert.Equal(t, want, got[0].ID, query)
	}

	all, err := svc.List(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, enums.IdentificationRUC, all[1].IdentificationKind)
}

func TestAdminWrites(t *testing.T) {
	svc, api, guard := newTestService(t)
	form := ClientForm{Cedula: "AB12345", Nombre: "Pedro", Correo: "p@example.com", Telefono: "0991112233", Direccion: "Cuenca", Password: "secreto"}

	_, err := svc.Create(context.Background(), adminSession, form)
	require.NoError(t, err)
	require.Len(t, api.created, 1)

	form.Password = ""
	_, err = svc.Update(context.Background(), adminSession, "c1", form)
	require.NoError(t, err)
	assert.Empty(t, api.updated["c1"].Password)

	view, err := svc.Deactivate(context.Background(), adminSession, "c1")
	require.NoError(t, err)
	assert.False(t, view.Active)

	assert.Equal(t, []string{"adm:client_write", "adm:client_write:c1", "adm:client_write:c1"}, guard.acquired)
}

func TestAdminWritesRequireAdmin(t *testing.T) {
	svc, api, _ := newTestService(t)
	customer := &session.Session{ID: "c", Token: "tok", Role: enums.UserRoleClient}

	_, err := svc.Deactivate(context.Background(), customer, "c1")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	assert.Empty(t, api.deactivated)
}
