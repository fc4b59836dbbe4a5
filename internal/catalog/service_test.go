package catalog

import (
	"context"
	"testing"

	"github.com/mt-arl/kairosMIxFront/internal/inflight"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/kairosapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductAPI struct {
	products    []kairosapi.Product
	searches    []string
	created     []kairosapi.ProductInput
	updated     map[string]kairosapi.ProductInput
	deactivated []string
}

func (f *fakeProductAPI) ListProducts(context.Context) ([]kairosapi.Product, error) {
	return f.products, nil
}

func (f *fakeProductAPI) SearchProducts(_ context.Context, query string) ([]kairosapi.Product, error) {
	f.searches = append(f.searches, query)
	return f.products[:1], nil
}

func (f *fakeProductAPI) GetProduct(_ context.Context, id string) (*kairosapi.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Producto no encontrado")
}

func (f *fakeProductAPI) CreateProduct(_ context.Context, tokens kairosapi.TokenSource, input kairosapi.ProductInput) (*kairosapi.Product, error) {
	if _, err := tokens.BearerToken(); err != nil {
		return nil, err
	}
	f.created = append(f.created, input)
	return &kairosapi.Product{ID: "new", Name: input.Name, Category: input.Category, Status: input.Status}, nil
}

func (f *fakeProductAPI) UpdateProduct(_ context.Context, _ kairosapi.TokenSource, id string, input kairosapi.ProductInput) (*kairosapi.Product, error) {
	if f.updated == nil {
		f.updated = map[string]kairosapi.ProductInput{}
	}
	f.updated[id] = input
	return &kairosapi.Product{ID: id, Name: input.Name}, nil
}

func (f *fakeProductAPI) DeactivateProduct(_ context.Context, _ kairosapi.TokenSource, id string) (*kairosapi.Product, error) {
	f.deactivated = append(f.deactivated, id)
	return &kairosapi.Product{}, nil
}

type fakeGuard struct {
	acquired []string
}

func (g *fakeGuard) Acquire(_ context.Context, scope, action string) (func(), error) {
	g.acquired = append(g.acquired, scope+":"+action)
	return func() {}, nil
}

func inactive() *bool {
	v := false
	return &v
}

func newTestService(t *testing.T) (Service, *fakeProductAPI, *fakeGuard) {
	t.Helper()
	api := &fakeProductAPI{products: []kairosapi.Product{
		{ID: "p1", Name: "Almendras", Category: "Frutos secos", PricePerPound: 3.5, CurrentStock: 10, MinStock: 2},
		{ID: "p2", Name: "Pasas", Category: "Frutas deshidratadas", PricePerPound: 2, CurrentStock: 1, MinStock: 5},
		{ID: "p3", Name: "Maní viejo", Category: "Frutos secos", IsActive: inactive()},
		{ID: "p4", Name: "Chía", Status: "active"},
	}}
	guard := &fakeGuard{}
	svc, err := NewService(ServiceParams{API: api, Guard: guard})
	require.NoError(t, err)
	return svc, api, guard
}

var admin = &session.Session{ID: "adm", Token: "tok", Role: enums.UserRoleAdmin}

func TestCatalogFiltersByNameOrCategory(t *testing.T) {
	svc, _, _ := newTestService(t)
	selected := selection.NewSet()
	selected.Toggle(selection.Product{ID: "p2"})

	all, err := svc.Catalog(context.Background(), "", selected)
	require.NoError(t, err)
	require.Len(t, all, 3, "deactivated products are hidden")
	assert.Equal(t, "General", all[2].Category)
	assert.True(t, all[1].Selected)
	assert.True(t, all[1].LowStock)
	assert.False(t, all[0].LowStock)
	assert.Equal(t, "$3.50", all[0].PricePerPoundDisplay)

	byCategory, err := svc.Catalog(context.Background(), "FRUTOS", nil)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "p1", byCategory[0].ID)

	byName, err := svc.Catalog(context.Background(), "pas", nil)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "p2", byName[0].ID)
}

func TestAdminListUsesBackendSearch(t *testing.T) {
	svc, api, _ := newTestService(t)
	list, err := svc.AdminList(context.Background(), "alm")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, []string{"alm"}, api.searches)
}

func TestCreateValidatesAndForwards(t *testing.T) {
	svc, api, guard := newTestService(t)

	_, err := svc.Create(context.Background(), admin, ProductForm{Name: "x"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, api.created)

	view, err := svc.Create(context.Background(), admin, validForm())
	require.NoError(t, err)
	assert.Equal(t, "new", view.ID)
	assert.Equal(t, "General", view.Category)
	require.Len(t, api.created, 1)
	assert.Equal(t, "ALM-01", api.created[0].Code)
	assert.Equal(t, []string{"adm:" + inflight.ActionProductWrite}, guard.acquired)
}

func TestWritesRequireAdmin(t *testing.T) {
	svc, api, _ := newTestService(t)
	customer := &session.Session{ID: "c", Token: "tok", Role: enums.UserRoleClient}

	_, err := svc.Create(context.Background(), customer, validForm())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = svc.Deactivate(context.Background(), nil, "p1")
	require.Error(t, err)
	assert.Empty(t, api.created)
	assert.Empty(t, api.deactivated)
}

func TestUpdateAndDeactivate(t *testing.T) {
	svc, api, guard := newTestService(t)

	_, err := svc.Update(context.Background(), admin, "p1", validForm())
	require.NoError(t, err)
	assert.Equal(t, "Almendras", api.updated["p1"].Name)

	view, err := svc.Deactivate(context.Background(), admin, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", view.ID)
	assert.Equal(t, []string{"p1"}, api.deactivated)
	assert.Equal(t, []string{"adm:product_write:p1", "adm:product_write:p1"}, guard.acquired)
}

func TestGetProduct(t *testing.T) {
	svc, _, _ := newTestService(t)
	view, err := svc.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Pasas", view.Name)

	_, err = svc.Get(context.Background(), "zzz")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
