// Package common defines shared constants, sentinel errors, and error types
// used across the BarangayConnect client. Callers match sentinels with
// errors.Is and typed errors with errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable signals that the backend could not be reached at all
	// (connection failure, probe failure, or a bridge status of 0). It is
	// the only "fast fail" condition in the transport layer.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrInvalidCredentials signals that no matching credentials were found,
	// either online or against the local store.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is the generic repository-level miss.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed or missing required input. It is raised
// before any network call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// AuthorizationError reports that credentials were valid but role/status
// policy forbids establishing a session.
type AuthorizationError struct {
	Role   string
	Status string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s account not approved yet. Status: %s", e.Role, e.Status)
}

// BackendError carries a non-2xx backend response normalized to a
// human-readable message. Detail comes from the backend's error payload when
// present, else from a status-keyed default.
type BackendError struct {
	Status int
	Detail string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
