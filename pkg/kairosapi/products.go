package kairosapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	err := c.doResource(ctx, call{
		operation: "products.list",
		method:    http.MethodGet,
		path:      "products",
		fallback:  "could not load products",
	}, "products", &out)
	return out, err
}

// SearchProducts runs the backend search; a blank query lists everything.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.ListProducts(ctx)
	}
	var out []Product
	err := c.doResource(ctx, call{
		operation: "products.search",
		method:    http.MethodGet,
		path:      "products/search",
		query:     url.Values{"q": []string{query}},
		fallback:  "product search failed",
	}, "products", &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	id, err := requireID(id, "product")
	if err != nil {
		return nil, err
	}
	var out Product
	err = c.doResource(ctx, call{
		operation: "products.get",
		method:    http.MethodGet,
		path:      resourcePath("products", id),
		fallback:  "product not found",
	}, "product", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, tokens TokenSource, input ProductInput) (*Product, error) {
	var out Product
	err := c.doResource(ctx, call{
		operation: "products.create",
		method:    http.MethodPost,
		path:      "products",
		body:      input,
		tokens:    tokens,
		fallback:  "could not create product",
	}, "product", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, tokens TokenSource, id string, input ProductInput) (*Product, error) {
	id, err := requireID(id, "product")
	if err != nil {
		return nil, err
	}
	var out Product
	err = c.doResource(ctx, call{
		operation: "products.update",
		method:    http.MethodPut,
		path:      resourcePath("products", id),
		body:      input,
		tokens:    tokens,
		fallback:  "could not update product",
	}, "product", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateProduct soft-deletes a product.
func (c *Client) DeactivateProduct(ctx context.Context, tokens TokenSource, id string) (*Product, error) {
	id, err := requireID(id, "product")
	if err != nil {
		return nil, err
	}
	var out Product
	err = c.doResource(ctx, call{
		operation: "products.deactivate",
		method:    http.MethodPatch,
		path:      resourcePath("products", id, "deactivate"),
		tokens:    tokens,
		fallback:  "could not deactivate product",
	}, "product", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
