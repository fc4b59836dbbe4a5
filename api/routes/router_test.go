package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mt-arl/kairosMIxFront/internal/catalog"
	"github.com/mt-arl/kairosMIxFront/internal/clients"
	"github.com/mt-arl/kairosMIxFront/internal/mixes"
	"github.com/mt-arl/kairosMIxFront/internal/orders"
	"github.com/mt-arl/kairosMIxFront/internal/selection"
	"github.com/mt-arl/kairosMIxFront/internal/session"
	"github.com/mt-arl/kairosMIxFront/pkg/config"
	"github.com/mt-arl/kairosMIxFront/pkg/enums"
	"github.com/mt-arl/kairosMIxFront/pkg/logger"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubSessions struct {
	session.Service
	sessions map[string]*session.Session
}

func (s stubSessions) Resolve(ctx context.Context, id string) (*session.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, session.ErrNoSession
}

func (s stubSessions) Logout(ctx context.Context, id string) error { return nil }

type stubSelections struct {
	selection.Service
	currentFor []string
}

func (s *stubSelections) Current(ctx context.Context, sessionID string) (*selection.Set, error) {
	s.currentFor = append(s.currentFor, sessionID)
	return selection.NewSet(), nil
}

func (s *stubSelections) View(ctx context.Context, sessionID string) (selection.View, error) {
	return selection.NewView(nil), nil
}

type stubCatalog struct {
	catalog.Service
}

func (stubCatalog) Catalog(ctx context.Context, query string, selected *selection.Set) ([]catalog.ProductView, error) {
	return []catalog.ProductView{}, nil
}

func (stubCatalog) AdminList(ctx context.Context, query string) ([]catalog.ProductView, error) {
	return []catalog.ProductView{}, nil
}

type stubClients struct{ clients.Service }

type stubMixes struct{ mixes.Service }

type stubOrders struct{ orders.Service }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	return cfg
}

func newTestRouter(selections *stubSelections) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	sessions := stubSessions{sessions: map[string]*session.Session{
		"client-sess": {ID: "client-sess", Token: "t", Role: enums.UserRoleClient},
		"admin-sess":  {ID: "admin-sess", Token: "t", Role: enums.UserRoleAdmin},
	}}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	return NewRouter(testConfig(), logg, stubPinger{}, nil, nil, metrics,
		sessions, selections, stubCatalog{}, stubClients{}, stubMixes{}, stubOrders{})
}

func do(t *testing.T, h http.Handler, method, path, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoutes(t *testing.T) {
	h := newTestRouter(&stubSelections{})

	rec := do(t, h, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, config.AppEnvDev, rec.Header().Get("X-KairosMix-Env"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = do(t, h, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	rec := do(t, newTestRouter(&stubSelections{}), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestCustomerRoutesRequireSession(t *testing.T) {
	h := newTestRouter(&stubSelections{})
	for _, path := range []string{"/api/session", "/api/selection", "/api/mixes", "/api/orders"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSessionRouteReturnsPublicView(t *testing.T) {
	rec := do(t, newTestRouter(&stubSelections{}), http.MethodGet, "/api/session", "admin-sess")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "admin-sess", payload.Data["id"])
	assert.Equal(t, true, payload.Data["canAccessAdmin"])
	assert.NotContains(t, rec.Body.String(), `"token"`)
}

func TestAdminRoutesHiddenFromClients(t *testing.T) {
	h := newTestRouter(&stubSelections{})

	rec := do(t, h, http.MethodGet, "/api/admin/products", "client-sess")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/admin/products", "admin-sess")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/admin/orders/statuses", "admin-sess")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "cancelado")
}

func TestCatalogMarksSelectionForSignedInCallers(t *testing.T) {
	selections := &stubSelections{}
	h := newTestRouter(selections)

	rec := do(t, h, http.MethodGet, "/api/catalog/products?q=nuez", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, selections.currentFor)

	rec = do(t, h, http.MethodGet, "/api/catalog/products", "client-sess")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"client-sess"}, selections.currentFor)
}

func TestLogoutSucceedsWithoutSession(t *testing.T) {
	rec := do(t, newTestRouter(&stubSelections{}), http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "logged_out"))
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	rec := do(t, newTestRouter(&stubSelections{}), http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
}
