// Package api is the typed client for the barangay backend REST service,
// built on top of the transport strategy layer. Methods return parsed
// payloads or normalized errors; callers never see raw transport failures.
package api

import (
	"context"
	"fmt"
	"strings"

	"barangayconnect/internal/client/transport"
)

// Client shuttles requests to the backend through the selected transport.
type Client struct {
	baseURL string
	tr      transport.Transporter
}

// New builds a Client for the given base URL, e.g. "http://localhost:8000".
func New(baseURL string, tr transport.Transporter) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), tr: tr}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// Ping is the lightweight reachability probe: GET /ping.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.tr.Execute(ctx, "get", c.url("/ping"), nil, transport.Options{})
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Close releases transport resources.
func (c *Client) Close() error {
	return c.tr.Close()
}
