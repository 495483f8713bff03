package api

import (
	"context"
	"net/http"

	"saglikhep/pkg/domain"
)

var userListSentinels = map[string]string{
	"role":   "all",
	"status": "all",
}

type userEnvelope struct {
	User domain.User `json:"user"`
}

type userListEnvelope struct {
	Users      []domain.User     `json:"users"`
	Pagination domain.Pagination `json:"pagination"`
}

// ListUsers fetches a page of platform users for moderation.
func (c *Client) ListUsers(ctx context.Context, f domain.Filters) ([]domain.User, domain.Pagination, error) {
	var resp userListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", queryValues(f, userListSentinels), nil, &resp); err != nil {
		return nil, domain.Pagination{}, err
	}
	return resp.Users, resp.Pagination, nil
}

// UpdateUserStatus bans or reactivates a user.
func (c *Client) UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus) (domain.User, error) {
	payload := map[string]string{"status": string(status)}
	var resp userEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/admin/users/"+id+"/status", nil, payload, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/users/"+id, nil, nil, nil)
}
