package upstream

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token and profile
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.send(ctx, http.MethodPost, "/api/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns a bearer token and profile,
// mirroring Login
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var result AuthResult
	if err := c.send(ctx, http.MethodPost, "/api/auth/register", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the profile for the given token. A 401 here means the token is
// no longer valid.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var profile Profile
	if err := c.get(ctx, "/api/auth/me", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile.User, nil
}

// ForgotPassword requests a reset email for the given address
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.send(ctx, http.MethodPost, "/api/auth/forgot-password", "", body, nil)
}

// ResetPassword exchanges a reset token for a new password
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.send(ctx, http.MethodPost, "/api/auth/reset-password", "", body, nil)
}
