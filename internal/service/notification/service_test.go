package notification

import (
	"context"
	"sync"
	"testing"

	"github.com/leavedesk/leave-backend-go/internal/domain/notification"
	"github.com/leavedesk/leave-backend-go/internal/pkg/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu    sync.Mutex
	inbox map[string][]*notification.Notification
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{inbox: make(map[string][]*notification.Notification)}
}

func (r *memoryRepo) Create(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inbox[n.RecipientID] = append([]*notification.Notification{n}, r.inbox[n.RecipientID]...)
	return nil
}

func (r *memoryRepo) ListByRecipient(_ context.Context, recipientID string) ([]*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inbox[recipientID], nil
}

func (r *memoryRepo) UnreadCount(_ context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.inbox[recipientID] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepo) MarkRead(_ context.Context, recipientID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.inbox[recipientID] {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func TestNotifyDispatchesToConnectedRecipient(t *testing.T) {
	repo := newMemoryRepo()
	registry := presence.NewRegistry()
	svc := NewNotificationService(repo, registry)

	ch := make(presence.Channel, 10)
	registry.Announce("user-1", ch)

	n, err := svc.Notify(context.Background(), "user-1", "Your leave request has been approved : annual")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)

	require.Len(t, ch, 1)
	event := <-ch
	assert.Equal(t, notification.EventNewNotification, event.Name)
	data, ok := event.Data.(notification.NotificationResponse)
	require.True(t, ok)
	assert.Equal(t, n.ID, data.ID)
	assert.Equal(t, "Your leave request has been approved : annual", data.Message)
}

func TestNotifyWithoutConnectionStillPersists(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewNotificationService(repo, presence.NewRegistry())

	_, err := svc.Notify(context.Background(), "user-1", "Your leave request has been rejected : sick")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "Your leave request has been rejected : sick", list.Notifications[0].Message)
	assert.Equal(t, 1, list.UnreadCount)
}

func TestNotifyFullChannelDropsEvent(t *testing.T) {
	repo := newMemoryRepo()
	registry := presence.NewRegistry()
	svc := NewNotificationService(repo, registry)

	ch := make(presence.Channel, 1)
	ch <- presence.Event{Name: "filler"}
	registry.Announce("user-1", ch)

	// Must not block even though the channel has no free slot.
	_, err := svc.Notify(context.Background(), "user-1", "dropped on the wire")
	require.NoError(t, err)
	assert.Len(t, ch, 1)

	// The inbox still has it.
	list, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
}

func TestListMostRecentFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewNotificationService(repo, presence.NewRegistry())

	_, err := svc.Notify(context.Background(), "user-1", "first")
	require.NoError(t, err)
	_, err = svc.Notify(context.Background(), "user-1", "second")
	require.NoError(t, err)
	_, err = svc.Notify(context.Background(), "user-2", "other inbox")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)
	assert.Equal(t, "second", list.Notifications[0].Message)
	assert.Equal(t, "first", list.Notifications[1].Message)
	assert.Equal(t, 2, list.UnreadCount)
}

func TestMarkRead(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewNotificationService(repo, presence.NewRegistry())

	n, err := svc.Notify(context.Background(), "user-1", "unread")
	require.NoError(t, err)

	// Another user cannot mark it.
	err = svc.MarkRead(context.Background(), "user-2", n.ID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(context.Background(), "user-1", n.ID))

	list, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, list.Notifications[0].Read)
	assert.Equal(t, 0, list.UnreadCount)

	// Marking twice is fine.
	require.NoError(t, svc.MarkRead(context.Background(), "user-1", n.ID))
}
