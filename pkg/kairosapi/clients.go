package kairosapi

import (
	"context"
	"net/http"
)

func (c *Client) ListClients(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := c.doResource(ctx, call{
		operation: "clients.list",
		method:    http.MethodGet,
		path:      "clients",
		fallback:  "could not load clients",
	}, "clients", &out)
	return out, err
}

func (c *Client) GetClient(ctx context.Context, id string) (*Customer, error) {
	id, err := requireID(id, "client")
	if err != nil {
		return nil, err
	}
	var out Customer
	err = c.doResource(ctx, call{
		operation: "clients.get",
		method:    http.MethodGet,
		path:      resourcePath("clients", id),
		fallback:  "client not found",
	}, "client", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, input ClientInput) (*Customer, error) {
	var out Customer
	err := c.doResource(ctx, call{
		operation: "clients.create",
		method:    http.MethodPost,
		path:      "clients",
		body:      input,
		fallback:  "could not create client",
	}, "client", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, input ClientInput) (*Customer, error) {
	id, err := requireID(id, "client")
	if err != nil {
		return nil, err
	}
	var out Customer
	err = c.doResource(ctx, call{
		operation: "clients.update",
		method:    http.MethodPut,
		path:      resourcePath("clients", id),
		body:      input,
		fallback:  "could not update client",
	}, "client", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeactivateClient(ctx context.Context, id string) (*Customer, error) {
	id, err := requireID(id, "client")
	if err != nil {
		return nil, err
	}
	var out Customer
	err = c.doResource(ctx, call{
		operation: "clients.deactivate",
		method:    http.MethodPatch,
		path:      resourcePath("clients", id, "deactivate"),
		fallback:  "could not deactivate client",
	}, "client", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
