package api

import (
	"context"
	"net/http"

	"mobilecare/internal/model"
)

const dashboardEndpoint = "dashboard"

// Dashboard fetches the aggregate counters for the signed-in user.
func (c *Client) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var res struct {
		Stats model.DashboardStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, dashboardEndpoint, nil, &res); err != nil {
		return nil, err
	}
	return &res.Stats, nil
}
