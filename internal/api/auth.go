package api

import (
	"context"
	"net/http"

	"saglikhep/pkg/domain"
)

type authResponse struct {
	User         domain.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// Login exchanges credentials for a token pair and the user profile.
// Persisting the pair is the session manager's job, not the client's.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, string, string, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.attempt(ctx, http.MethodPost, "/auth/login", nil, jsonBody(payload), &resp, ""); err != nil {
		return domain.User{}, "", "", err
	}
	return resp.User, resp.AccessToken, resp.RefreshToken, nil
}

// Profile fetches the currently authenticated user.
func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var resp struct {
		User domain.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, nil, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

// Logout invalidates the server-side session. Callers must clear local
// session state regardless of this call's outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
