package service

import (
	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
	"github.com/angple/arena-backend/internal/ws"
)

// Pusher delivers a real-time event to a user's open connections
type Pusher interface {
	SendToUser(userID string, event *ws.Event)
}

// NotificationService defines notification business logic
type NotificationService interface {
	Notify(n *domain.Notification) error
	List(userID string, page common.Page) ([]domain.Notification, int64, error)
	UnreadCount(userID string) (int64, error)
	MarkAsRead(userID string, id uint64) error
	MarkAllAsRead(userID string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher
}

// NewNotificationService creates a new NotificationService. pusher may be nil.
func NewNotificationService(repo repository.NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{repo: repo, pusher: pusher}
}

// Notify stores the notification and pushes it with the new unread count
func (s *notificationService) Notify(n *domain.Notification) error {
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.pusher == nil {
		return nil
	}
	s.pusher.SendToUser(n.UserID, &ws.Event{Type: "notification", Payload: n})
	if unread, err := s.repo.UnreadCount(n.UserID); err == nil {
		s.pusher.SendToUser(n.UserID, &ws.Event{Type: "unread_count", Payload: unread})
	}
	return nil
}

func (s *notificationService) List(userID string, page common.Page) ([]domain.Notification, int64, error) {
	return s.repo.List(userID, page.Offset(), page.Limit)
}

func (s *notificationService) UnreadCount(userID string) (int64, error) {
	return s.repo.UnreadCount(userID)
}

// MarkAsRead answers not found for notifications the user does not own
func (s *notificationService) MarkAsRead(userID string, id uint64) error {
	ok, err := s.repo.MarkAsRead(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotificationNotFound
	}
	s.pushUnread(userID)
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if _, err := s.repo.MarkAllAsRead(userID); err != nil {
		return err
	}
	s.pushUnread(userID)
	return nil
}

func (s *notificationService) pushUnread(userID string) {
	if s.pusher == nil {
		return
	}
	if unread, err := s.repo.UnreadCount(userID); err == nil {
		s.pusher.SendToUser(userID, &ws.Event{Type: "unread_count", Payload: unread})
	}
}
