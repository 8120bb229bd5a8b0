package notification

import "time"

// Notification belongs to exactly one recipient. It is created on each
// realized leave status change and mutated only by the read-flag transition.
type Notification struct {
	ID          string
	RecipientID string
	Message     string
	Read        bool
	CreatedAt   time.Time
}
