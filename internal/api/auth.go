package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth/login", creds)
	if err != nil {
		return nil, err
	}
	resp, err := dataEnvelope[AuthResponse](body)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth/register", reg)
	if err != nil {
		return nil, err
	}
	resp, err := dataEnvelope[AuthResponse](body)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser returns the account the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	user, err := dataEnvelope[User](body)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile edits the signed-in user's profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/users/profile", update)
	if err != nil {
		return nil, err
	}
	user, err := dataEnvelope[User](body)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
