package kairosapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type staticToken string

func (s staticToken) BearerToken() (string, error) {
	if s == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
	}
	return string(s), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient("http://kairos.test/api/", WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)
}

func TestCreateMixSendsBearerAndPayload(t *testing.T) {
	var captured *http.Request
	var payload map[string]any

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &payload))
		return jsonResponse(http.StatusCreated, `{"_id":"mix-1","name":"Test Mix","ingredients":[{"product":"p-a","quantityLbs":2}],"totalPrice":11}`), nil
	})

	mix, err := client.CreateMix(context.Background(), staticToken("tok-123"), CreateMixRequest{
		Name: "Test Mix",
		Ingredients: []MixIngredientInput{
			{ProductID: "p-a", QuantityLbs: 2},
			{ProductID: "p-b", QuantityLbs: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "http://kairos.test/api/mixes", captured.URL.String())
	assert.Equal(t, "Bearer tok-123", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
	assert.Equal(t, "Test Mix", payload["name"])
	assert.Len(t, payload["ingredients"], 2)

	require.NotNil(t, mix)
	assert.Equal(t, "mix-1", mix.ID)
	require.NotNil(t, mix.TotalPrice)
	assert.InDelta(t, 11.0, *mix.TotalPrice, 1e-9)
}

func TestAuthenticatedCallWithoutSessionNeverHitsNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	_, err := client.ListOrders(context.Background(), staticToken(""))
	require.Error(t, err)
	assert.False(t, called, "request must be blocked before the network")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestRejectionSurfacesBackendMessageVerbatim(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"message":"Stock insuficiente para Almendras"}`), nil
	})

	_, err := client.CreateOrder(context.Background(), staticToken("tok"), CreateOrderRequest{
		Items: []OrderLine{{ProductID: "p-1", Quantity: 1, Unit: "lbs"}},
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUpstream, typed.Code())
	assert.Equal(t, "Stock insuficiente para Almendras", typed.Message())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.UpstreamStatus())
	assert.Equal(t, "orders.create", statusErr.UpstreamOperation())
}

func TestRejectionStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		code   pkgerrors.Code
		msg    string
	}{
		{http.StatusUnauthorized, `{"message":"Token inválido"}`, pkgerrors.CodeUnauthorized, "Token inválido"},
		{http.StatusForbidden, `{}`, pkgerrors.CodeForbidden, "could not load order"},
		{http.StatusNotFound, `not json`, pkgerrors.CodeNotFound, "could not load order"},
		{http.StatusInternalServerError, `{"error":"boom"}`, pkgerrors.CodeUpstream, "boom"},
		{http.StatusConflict, `{"error":{"message":"nested"}}`, pkgerrors.CodeUpstream, "nested"},
	}

	for _, tc := range cases {
		client := newTestClient(t, func(*http.Request) (*http.Response, error) {
			return jsonResponse(tc.status, tc.body), nil
		})
		_, err := client.GetOrder(context.Background(), staticToken("tok"), "o-1")
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "status %d", tc.status)
		assert.Equal(t, tc.code, typed.Code(), "status %d", tc.status)
		assert.Equal(t, tc.msg, typed.Message(), "status %d", tc.status)
	}
}

func TestTransportFailureIsDependencyError(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := client.ListProducts(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestUndecodableSuccessIsDependencyError(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"products": "nope"}`), nil
	})

	_, err := client.ListProducts(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestSearchProductsEncodesQuery(t *testing.T) {
	var captured string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req.URL.String()
		return jsonResponse(http.StatusOK, `[{"_id":"p-1","name":"Nuez de Brasil","pricePerPound":4.5}]`), nil
	})

	products, err := client.SearchProducts(context.Background(), " nuez brasil ")
	require.NoError(t, err)
	assert.Equal(t, "http://kairos.test/api/products/search?q=nuez+brasil", captured)
	require.Len(t, products, 1)
	assert.Equal(t, "Nuez de Brasil", products[0].Name)
}

func TestSearchProductsBlankQueryLists(t *testing.T) {
	var captured string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req.URL.Path
		return jsonResponse(http.StatusOK, `{"products":[]}`), nil
	})

	_, err := client.SearchProducts(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "/api/products", captured)
}

func TestCancelOrderToleratesMessageOnlyReply(t *testing.T) {
	var method, path string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		method, path = req.Method, req.URL.Path
		return jsonResponse(http.StatusOK, `{"message":"Pedido cancelado"}`), nil
	})

	order, err := client.CancelOrder(context.Background(), staticToken("tok"), "o-9")
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/orders/o-9", path)
}

func TestCancelOrderUnwrapsOrder(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"message":"ok","order":{"_id":"o-9","status":"cancelado","client":"c-1"}}`), nil
	})

	order, err := client.CancelOrder(context.Background(), staticToken("tok"), "o-9")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "cancelado", order.Status)
	require.NotNil(t, order.Client)
	assert.Equal(t, "c-1", order.Client.ID)
}

func TestUpdateOrderStatusBody(t *testing.T) {
	var body map[string]string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPatch, req.Method)
		assert.Equal(t, "/api/orders/o-1/status", req.URL.Path)
		raw, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(raw, &body)
		return jsonResponse(http.StatusOK, `{"_id":"o-1","status":"pagado"}`), nil
	})

	order, err := client.UpdateOrderStatus(context.Background(), staticToken("tok"), "o-1", "pagado")
	require.NoError(t, err)
	assert.Equal(t, "pagado", body["status"])
	assert.Equal(t, "pagado", order.Status)
}

func TestMissingIDIsValidationError(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	_, err := client.DeactivateProduct(context.Background(), staticToken("tok"), " ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestLoginDecodesEitherAccountShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"jwt","user":{"_id":"u-1","name":"Admin","email":"admin@kairozmix.com","role":"admin"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL + "/api")
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), LoginRequest{Email: "admin@kairozmix.com", Password: "secret"})
	require.NoError(t, err)
	account := resp.Account()
	require.NotNil(t, account)
	assert.Equal(t, "u-1", account.Identifier())
	assert.Equal(t, "Admin", account.DisplayName())
	assert.Equal(t, "admin@kairozmix.com", account.EmailAddress())
	assert.Equal(t, "admin", account.Role)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"client":{"_id":"c-1"}}`), nil
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestClientRecordsUpstreamMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client, err := NewClient("http://kairos.test/api",
		WithHTTPClient(&http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `[]`), nil
		})}),
		WithMetrics(metrics.NewUpstreamMetrics(reg)),
	)
	require.NoError(t, err)

	_, err = client.ListAllMixes(context.Background())
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, family := range families {
		if family.GetName() == "upstream_requests_total" {
			found = len(family.GetMetric()) == 1
		}
	}
	assert.True(t, found, "expected one upstream_requests_total series")
}
