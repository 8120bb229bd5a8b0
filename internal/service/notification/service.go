package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leavedesk/leave-backend-go/internal/domain/notification"
	"github.com/leavedesk/leave-backend-go/internal/pkg/presence"
)

type service struct {
	repo     notification.Repository
	registry *presence.Registry
}

// NewNotificationService creates the inbox service with presence-aware
// dispatch over the given registry.
func NewNotificationService(repo notification.Repository, registry *presence.Registry) notification.Service {
	return &service{
		repo:     repo,
		registry: registry,
	}
}

// Notify persists the notification and then pushes it to the recipient's
// live channel if one is open. The push is at-most-once: an absent entry or
// a full channel drops the event, never queues it.
func (s *service) Notify(ctx context.Context, recipientID, message string) (*notification.Notification, error) {
	n := &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Message:     message,
		Read:        false,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.dispatch(n)

	return n, nil
}

func (s *service) dispatch(n *notification.Notification) {
	ch, ok := s.registry.Lookup(n.RecipientID)
	if !ok {
		return
	}

	event := presence.Event{
		Name: notification.EventNewNotification,
		Data: notification.ToResponse(n),
	}

	select {
	case ch <- event:
	default:
		// Channel full; the recipient catches up from the inbox.
		slog.Debug("notification push dropped", "recipient_id", n.RecipientID)
	}
}

func (s *service) List(ctx context.Context, recipientID string) (*notification.ListResponse, error) {
	notifications, err := s.repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.UnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.ToResponse(n)
	}

	return &notification.ListResponse{
		Notifications: responses,
		UnreadCount:   unreadCount,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, recipientID, id string) error {
	return s.repo.MarkRead(ctx, recipientID, id)
}
