package api

import (
	"context"
	"net/http"

	"mobilecare/internal/model"
)

const notificationsEndpoint = "notifications"

// FetchNotifications returns the authenticated user's full notification
// list.
func (c *Client) FetchNotifications(ctx context.Context) ([]model.Notification, error) {
	var res struct {
		Notifications []model.Notification `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, notificationsEndpoint, nil, &res); err != nil {
		return nil, err
	}
	return res.Notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, notificationsEndpoint+"/read/"+id, nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, notificationsEndpoint+"/"+id, nil, nil)
}

// DeleteNotifications bulk-deletes the given ids in one request.
func (c *Client) DeleteNotifications(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return &ValidationError{Message: "no notification ids given"}
	}
	body := map[string][]string{"ids": ids}
	return c.do(ctx, http.MethodPost, notificationsEndpoint+"/delete-multiple", body, nil)
}

func (c *Client) DeleteAllNotifications(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, notificationsEndpoint+"/delete-all", nil, nil)
}
