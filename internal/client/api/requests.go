package api

import (
	"context"
	"fmt"
	"net/url"

	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/transport"
)

// ListRequests fetches document requests, optionally filtered by contact
// and/or status query parameters.
func (c *Client) ListRequests(ctx context.Context, contact string, status models.RequestStatus) ([]models.DocumentRequest, error) {
	q := url.Values{}
	if contact != "" {
		q.Set("contact", contact)
	}
	if status != "" {
		q.Set("status", string(status))
	}
	endpoint := c.url("/document-requests")
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	resp, err := c.tr.Execute(ctx, "get", endpoint, nil, transport.Options{})
	if err != nil {
		return nil, err
	}

	var out []models.DocumentRequest
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddRequest files a new document request.
func (c *Client) AddRequest(ctx context.Context, req *models.DocumentRequest) (*models.DocumentRequest, error) {
	resp, err := c.tr.Execute(ctx, "post", c.url("/document-requests"), req, transport.Options{})
	if err != nil {
		return nil, err
	}

	var out models.DocumentRequest
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRequestStatus drives a status transition: POST /document-requests/status.
func (c *Client) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus, action, notes string) error {
	body := map[string]any{"id": id, "status": status}
	if action != "" {
		body["action"] = action
	}
	if notes != "" {
		body["notes"] = notes
	}
	_, err := c.tr.Execute(ctx, "post", c.url("/document-requests/status"), body, transport.Options{})
	return err
}

// DeleteRequest removes a document request.
func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	_, err := c.tr.Execute(ctx, "delete", c.url(fmt.Sprintf("/document-requests/%d", id)), nil, transport.Options{})
	return err
}
