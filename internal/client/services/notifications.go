package services

import (
	"context"

	"barangayconnect/internal/client/models"
	"barangayconnect/internal/client/session"
)

// notificationsBackend is the slice of the API client the notification
// service uses.
type notificationsBackend interface {
	ListNotifications(ctx context.Context, userID int64, role, token string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64, token string) error
	DeleteNotification(ctx context.Context, id int64, token string) error
}

// NotificationService lists and manages the current user's notifications.
// Staff see their role-addressed feed; residents see their personal one.
type NotificationService struct {
	api     notificationsBackend
	session *session.Manager
}

func NewNotificationService(backend notificationsBackend, sm *session.Manager) *NotificationService {
	return &NotificationService{api: backend, session: sm}
}

// List fetches the current user's notification feed.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	cur := s.session.Current()
	if cur == nil {
		return nil, ErrNoSession
	}

	if cur.Role == models.RoleSecretary || cur.Role == models.RoleCaptain {
		return s.api.ListNotifications(ctx, 0, cur.Role, cur.Token)
	}
	return s.api.ListNotifications(ctx, cur.BackendID, "", cur.Token)
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	cur := s.session.Current()
	if cur == nil {
		return ErrNoSession
	}
	return s.api.MarkNotificationRead(ctx, id, cur.Token)
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	cur := s.session.Current()
	if cur == nil {
		return ErrNoSession
	}
	return s.api.DeleteNotification(ctx, id, cur.Token)
}
