package kairosapi

import (
	"context"
	"net/http"
)

// CreateMix saves a named mix for the session's account.
func (c *Client) CreateMix(ctx context.Context, tokens TokenSource, req CreateMixRequest) (*Mix, error) {
	var out Mix
	err := c.doResource(ctx, call{
		operation: "mixes.create",
		method:    http.MethodPost,
		path:      "mixes",
		body:      req,
		tokens:    tokens,
		fallback:  "could not save mix",
	}, "mix", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMixes returns the mixes saved by the session's account.
func (c *Client) ListMixes(ctx context.Context, tokens TokenSource) ([]Mix, error) {
	var out []Mix
	err := c.doResource(ctx, call{
		operation: "mixes.list",
		method:    http.MethodGet,
		path:      "mixes",
		tokens:    tokens,
		fallback:  "could not load mixes",
	}, "mixes", &out)
	return out, err
}

// ListAllMixes returns every saved mix. The endpoint is unauthenticated upstream.
func (c *Client) ListAllMixes(ctx context.Context) ([]Mix, error) {
	var out []Mix
	err := c.doResource(ctx, call{
		operation: "mixes.list_all",
		method:    http.MethodGet,
		path:      "mixes/all",
		fallback:  "could not load mixes",
	}, "mixes", &out)
	return out, err
}
