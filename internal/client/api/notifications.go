package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/transport"
)

// ListNotifications fetches notifications for a user and/or role.
func (c *Client) ListNotifications(ctx context.Context, userID int64, role, token string) ([]models.Notification, error) {
	q := url.Values{}
	if userID != 0 {
		q.Set("user_id", strconv.FormatInt(userID, 10))
	}
	if role != "" {
		q.Set("role", role)
	}
	endpoint := c.url("/notifications")
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	resp, err := c.tr.Execute(ctx, "get", endpoint, nil, transport.Options{BearerToken: token})
	if err != nil {
		return nil, err
	}

	var out []models.Notification
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead marks one notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64, token string) error {
	endpoint := c.url(fmt.Sprintf("/notifications/%d", id))
	_, err := c.tr.Execute(ctx, "put", endpoint, map[string]bool{"read": true}, transport.Options{BearerToken: token})
	return err
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64, token string) error {
	endpoint := c.url(fmt.Sprintf("/notifications/%d", id))
	_, err := c.tr.Execute(ctx, "delete", endpoint, nil, transport.Options{BearerToken: token})
	return err
}
