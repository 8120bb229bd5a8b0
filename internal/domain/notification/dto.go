package notification

import "time"

// NotificationResponse represents a notification in API responses and in
// newNotification stream events.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"date"`
}

// ListResponse is the inbox as returned to the owner.
type ListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// ToResponse converts a Notification entity to its API shape.
func ToResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// Event is an application-level event pushed over a live channel.
type Event struct {
	Name string               `json:"event"`
	Data NotificationResponse `json:"data"`
}

// EventNewNotification is the event name delivered when a leave status
// change produces a notification for a connected owner.
const EventNewNotification = "newNotification"
