package notification

import "context"

// Repository defines the notification inbox storage interface
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// ListByRecipient returns the recipient's inbox most-recent-first.
	ListByRecipient(ctx context.Context, recipientID string) ([]*Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	// MarkRead sets the read flag on the recipient's notification. It fails
	// with ErrNotificationNotFound when the id does not belong to the
	// recipient, and is idempotent otherwise.
	MarkRead(ctx context.Context, recipientID, id string) error
}
