package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"barangayconnect/internal/common"
)

// HTTPTransporter is the in-process web strategy, built on net/http.
type HTTPTransporter struct {
	client  *http.Client
	tokenFn func() string
}

// NewHTTPTransporter builds the web transporter. tokenFn, when non-nil, is
// consulted per request for a bearer token; an empty result sends none.
func NewHTTPTransporter(timeout time.Duration, tokenFn func() string) *HTTPTransporter {
	return &HTTPTransporter{
		client:  &http.Client{Timeout: timeout},
		tokenFn: tokenFn,
	}
}

// Execute issues the call through the standard HTTP client. Connection
// failures surface as common.ErrUnreachable; non-2xx responses as
// *common.BackendError with a normalized message.
func (t *HTTPTransporter) Execute(ctx context.Context, method, url string, body any, opts Options) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := opts.BearerToken
	if token == "" && t.tokenFn != nil {
		token = t.tokenFn()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("web request failed: %w", common.ErrUnreachable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, normalizeError(resp.StatusCode, data)
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Close is a no-op; the underlying client holds no dedicated resources.
func (t *HTTPTransporter) Close() error { return nil }
