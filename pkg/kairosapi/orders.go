package kairosapi

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
)

func (c *Client) CreateOrder(ctx context.Context, tokens TokenSource, req CreateOrderRequest) (*Order, error) {
	var out Order
	err := c.doResource(ctx, call{
		operation: "orders.create",
		method:    http.MethodPost,
		path:      "orders",
		body:      req,
		tokens:    tokens,
		fallback:  "could not create order",
	}, "order", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders returns the caller's orders, or every order for admin tokens.
func (c *Client) ListOrders(ctx context.Context, tokens TokenSource) ([]Order, error) {
	var out []Order
	err := c.doResource(ctx, call{
		operation: "orders.list",
		method:    http.MethodGet,
		path:      "orders",
		tokens:    tokens,
		fallback:  "could not load orders",
	}, "orders", &out)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, tokens TokenSource, id string) (*Order, error) {
	id, err := requireID(id, "order")
	if err != nil {
		return nil, err
	}
	var out Order
	err = c.doResource(ctx, call{
		operation: "orders.get",
		method:    http.MethodGet,
		path:      resourcePath("orders", id),
		tokens:    tokens,
		fallback:  "could not load order",
	}, "order", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, tokens TokenSource, id, status string) (*Order, error) {
	id, err := requireID(id, "order")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}
	var out Order
	err = c.doResource(ctx, call{
		operation: "orders.update_status",
		method:    http.MethodPatch,
		path:      resourcePath("orders", id, "status"),
		body:      UpdateOrderStatusRequest{Status: status},
		tokens:    tokens,
		fallback:  "could not update order status",
	}, "order", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOrder asks the backend to cancel an order. The reply may omit the order,
// in which case the returned pointer is nil.
func (c *Client) CancelOrder(ctx context.Context, tokens TokenSource, id string) (*Order, error) {
	id, err := requireID(id, "order")
	if err != nil {
		return nil, err
	}
	var out Order
	err = c.doResource(ctx, call{
		operation: "orders.cancel",
		method:    http.MethodDelete,
		path:      resourcePath("orders", id),
		tokens:    tokens,
		fallback:  "could not cancel order",
	}, "order", &out)
	if err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, nil
	}
	return &out, nil
}
