package notification

import "context"

// Service defines the notification inbox and dispatch interface
type Service interface {
	// Notify persists a notification at the head of the recipient's inbox
	// and pushes it to the recipient's live channel when one is open.
	// Delivery is at-most-once and best-effort; it never blocks the caller.
	Notify(ctx context.Context, recipientID, message string) (*Notification, error)

	List(ctx context.Context, recipientID string) (*ListResponse, error)
	MarkRead(ctx context.Context, recipientID, id string) error
}
