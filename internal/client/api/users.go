package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"barangayconnect/internal/client/transport"
)

// BackendUser is the backend's snake_case user representation.
type BackendUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name"`
	LastName     string `json:"last_name"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	CivilStatus  string `json:"civil_status"`
	Contact      string `json:"contact"`
	Purok        string `json:"purok"`
	Barangay     string `json:"barangay"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`
	PlaceOfBirth string `json:"place_of_birth"`
	Photo        string `json:"photo"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

// Identified reports whether the backend response carries enough to
// reconcile a local row: an id or at least an identifying name field.
func (u *BackendUser) Identified() bool {
	return u != nil && (u.ID != 0 || u.FirstName != "")
}

// RegistrationPayload is the sanitized outbound creation/update body.
type RegistrationPayload struct {
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	CivilStatus  string `json:"civil_status"`
	Contact      string `json:"contact,omitempty"`
	Purok        string `json:"purok"`
	Barangay     string `json:"barangay"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
	Role         string `json:"role"`
	Password     string `json:"password,omitempty"`
	Photo        string `json:"photo,omitempty"`
}

// LoginResponse is the POST /users/login result.
type LoginResponse struct {
	User        *BackendUser `json:"user"`
	AccessToken string       `json:"access_token"`
}

// RegisterUser creates a user: POST /users/. Every call carries a fresh
// request id so replayed registrations stay distinguishable in backend logs.
func (c *Client) RegisterUser(ctx context.Context, payload *RegistrationPayload) (*BackendUser, error) {
	opts := transport.Options{Headers: map[string]string{"X-Request-Id": uuid.NewString()}}

	resp, err := c.tr.Execute(ctx, "post", c.url("/users/"), payload, opts)
	if err != nil {
		return nil, err
	}

	var user BackendUser
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login submits credentials: POST /users/login.
func (c *Client) Login(ctx context.Context, contact, password string) (*LoginResponse, error) {
	body := map[string]string{"contact": contact, "password": password}

	resp, err := c.tr.Execute(ctx, "post", c.url("/users/login"), body, transport.Options{})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("invalid login response")
	}
	return &out, nil
}

// ListUsers fetches all users (staff dashboards): GET /users/.
func (c *Client) ListUsers(ctx context.Context, token string) ([]BackendUser, error) {
	resp, err := c.tr.Execute(ctx, "get", c.url("/users/"), nil, transport.Options{BearerToken: token})
	if err != nil {
		return nil, err
	}

	var users []BackendUser
	if err := resp.DecodeJSON(&users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser edits a profile: PUT /users/{id}. Contact changes must not be
// sent here; they go through the OTP side flow.
func (c *Client) UpdateUser(ctx context.Context, backendID int64, payload *RegistrationPayload, token string) (*BackendUser, error) {
	url := c.url(fmt.Sprintf("/users/%d", backendID))

	resp, err := c.tr.Execute(ctx, "put", url, payload, transport.Options{BearerToken: token})
	if err != nil {
		return nil, err
	}

	var user BackendUser
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyContact confirms a pending contact change: POST /users/verify-contact/{id}.
func (c *Client) VerifyContact(ctx context.Context, backendID int64, otp string) error {
	url := c.url(fmt.Sprintf("/users/verify-contact/%d", backendID))
	_, err := c.tr.Execute(ctx, "post", url, map[string]string{"otp": otp}, transport.Options{})
	return err
}

// ForgotPassword triggers OTP dispatch: POST /users/forgot-password.
func (c *Client) ForgotPassword(ctx context.Context, contact string) error {
	body := map[string]string{"contact": contact}
	_, err := c.tr.Execute(ctx, "post", c.url("/users/forgot-password"), body, transport.Options{})
	return err
}
