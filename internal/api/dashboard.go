package api

import (
	"context"
	"net/http"

	"saglikhep/pkg/domain"
)

// DashboardStats fetches the admin landing-page aggregates.
func (c *Client) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var resp struct {
		Stats domain.DashboardStats `json:"stats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &resp); err != nil {
		return domain.DashboardStats{}, err
	}
	return resp.Stats, nil
}
