package services

import (
	"context"

	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/session"
	"barangayconnect/internal/common"
)

// documentsBackend is the slice of the API client the document service uses.
type documentsBackend interface {
	ListRequests(ctx context.Context, contact string, status models.RequestStatus) ([]models.DocumentRequest, error)
	AddRequest(ctx context.Context, req *models.DocumentRequest) (*models.DocumentRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus, action, notes string) error
	DeleteRequest(ctx context.Context, id int64) error
}

// DocumentService drives the document-request flows. Requests are owned by
// the backend; the client only holds transient page-level collections.
type DocumentService struct {
	api     documentsBackend
	session *session.Manager
}

func NewDocumentService(backend documentsBackend, sm *session.Manager) *DocumentService {
	return &DocumentService{api: backend, session: sm}
}

// ListMine lists the current user's requests, optionally filtered by status.
func (s *DocumentService) ListMine(ctx context.Context, status models.RequestStatus) ([]models.DocumentRequest, error) {
	cur := s.session.Current()
	if cur == nil {
		return nil, ErrNoSession
	}
	return s.api.ListRequests(ctx, cur.Contact, status)
}

// ListAll lists every request (staff view), optionally filtered by status.
func (s *DocumentService) ListAll(ctx context.Context, status models.RequestStatus) ([]models.DocumentRequest, error) {
	if err := s.requireStaff(); err != nil {
		return nil, err
	}
	return s.api.ListRequests(ctx, "", status)
}

// Submit files a new request on behalf of the current user. Document type
// and purpose are required; the copy count defaults to one.
func (s *DocumentService) Submit(ctx context.Context, req *models.DocumentRequest) (*models.DocumentRequest, error) {
	cur := s.session.Current()
	if cur == nil {
		return nil, ErrNoSession
	}

	if req.DocumentType == "" {
		return nil, &common.ValidationError{Field: "Document type", Reason: "is required"}
	}
	if req.Purpose == "" {
		return nil, &common.ValidationError{Field: "Purpose", Reason: "is required"}
	}
	if req.Copies <= 0 {
		req.Copies = 1
	}

	req.Contact = cur.Contact
	req.Status = models.RequestPending
	return s.api.AddRequest(ctx, req)
}

// Cancel withdraws one of the current user's requests.
func (s *DocumentService) Cancel(ctx context.Context, id int64) error {
	if s.session.Current() == nil {
		return ErrNoSession
	}
	return s.api.UpdateRequestStatus(ctx, id, models.RequestCancelled, "", "")
}

// SetStatus drives a staff-side status transition with an optional action
// label and notes.
func (s *DocumentService) SetStatus(ctx context.Context, id int64, status models.RequestStatus, action, notes string) error {
	if err := s.requireStaff(); err != nil {
		return err
	}
	return s.api.UpdateRequestStatus(ctx, id, status, action, notes)
}

// Delete removes a request outright (staff only).
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if err := s.requireStaff(); err != nil {
		return err
	}
	return s.api.DeleteRequest(ctx, id)
}

func (s *DocumentService) requireStaff() error {
	cur := s.session.Current()
	if cur == nil {
		return ErrNoSession
	}
	if cur.Role != models.RoleSecretary && cur.Role != models.RoleCaptain {
		return &common.AuthorizationError{Role: cur.Role, Status: cur.Status}
	}
	return nil
}
