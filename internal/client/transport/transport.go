// Package transport abstracts the two HTTP execution strategies the client
// can run on: an in-process web client and a native bridge. Both are
// normalized into a single request/response contract, so callers receive
// either a parsed success payload or an error with a stable, human-readable
// message; raw transport failures never escape.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"barangayconnect/internal/common"
)

// Options carries per-request adjustments on top of the default JSON headers.
type Options struct {
	// BearerToken, when non-empty, is sent as an Authorization header.
	BearerToken string

	// Headers are extra headers merged into the request.
	Headers map[string]string
}

// Response is the normalized result both strategies produce.
type Response struct {
	Status int
	Body   []byte
}

// DecodeJSON unmarshals the response body into v. An empty body decodes into
// the zero value.
func (r *Response) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Transporter executes one HTTP-shaped call. Implementations must return
// *common.BackendError for non-2xx responses and common.ErrUnreachable when
// the backend could not be contacted at all.
type Transporter interface {
	Execute(ctx context.Context, method, url string, body any, opts Options) (*Response, error)
	Close() error
}

var defaultMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request.",
	http.StatusUnauthorized:        "You are not authorized. Please log in again.",
	http.StatusForbidden:           "You do not have permission to do that.",
	http.StatusNotFound:            "The requested record was not found.",
	http.StatusConflict:            "The record conflicts with an existing one.",
	http.StatusInternalServerError: "The server encountered an error. Please try again later.",
	http.StatusBadGateway:          "The server is temporarily unavailable.",
	http.StatusServiceUnavailable:  "The server is temporarily unavailable.",
}

// normalizeError maps a non-2xx status and body to a BackendError carrying a
// human-readable message: the backend's detail field when present, else a
// status-keyed default.
func normalizeError(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	detail := payload.Detail
	if detail == "" {
		detail = payload.Error
	}
	if detail == "" {
		detail = defaultMessages[status]
	}
	return &common.BackendError{Status: status, Detail: detail}
}
