package client

import (
	"context"
	"net/http"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

// Login exchanges credentials for a bearer token. It never sends an
// Authorization header.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, call{
		op:     "invalid credentials",
		method: http.MethodPost,
		path:   "/login",
		body:   creds,
		out:    &resp,
	})
	if err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// Signup creates an account. It does not log the user in.
func (c *Client) Signup(ctx context.Context, creds model.Credentials) (model.User, error) {
	var user model.User
	err := c.do(ctx, call{
		op:     "signup failed",
		method: http.MethodPost,
		path:   "/signup",
		body:   creds,
		out:    &user,
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
