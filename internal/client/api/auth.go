package api

import (
	"context"
	"net/http"
)

// Register submits a registration form.
func (c *Client) Register(ctx context.Context, form Form) (*MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/register", body: form, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, credentials Form) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/login", body: credentials, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
