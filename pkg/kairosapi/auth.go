package kairosapi

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, call{
		operation: "auth.login",
		method:    http.MethodPost,
		path:      "auth/login",
		body:      req,
		fallback:  "invalid credentials",
	}, &resp)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "login response did not include a token")
	}
	return &resp, nil
}

// RegisterClient creates a customer account through the public client endpoint.
func (c *Client) RegisterClient(ctx context.Context, input ClientInput) (*Customer, error) {
	var out Customer
	err := c.doResource(ctx, call{
		operation: "auth.register",
		method:    http.MethodPost,
		path:      "clients",
		body:      input,
		fallback:  "could not register client",
	}, "client", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
