package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/stayware/go-property-server/notifications"
	notificationrepofake "github.com/stayware/go-property-server/notifications/repofake"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	published []*notifications.Notification
}

func (p *capturingPublisher) Publish(_ string, n *notifications.Notification) {
	p.published = append(p.published, n)
}

func TestCreateStoresAndPublishes(t *testing.T) {
	repo := notificationrepofake.NewFakeNotificationRepo()
	publisher := &capturingPublisher{}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	service := notifications.NewService(repo, publisher, notifications.WithNowTime(func() time.Time { return now }))

	n, err := service.Create(context.Background(), "owner-1", nil, "Booking confirmed", "Your stay is confirmed.")
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)
	require.Equal(t, now, n.CreatedAt)
	require.False(t, n.Read)

	list, err := service.ListForOwner(context.Background(), "owner-1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Len(t, publisher.published, 1)
	require.Equal(t, n.ID, publisher.published[0].ID)
}

func TestCreateWithoutPublisher(t *testing.T) {
	repo := notificationrepofake.NewFakeNotificationRepo()
	service := notifications.NewService(repo, nil)

	_, err := service.Create(context.Background(), "owner-1", nil, "Title", "Body")
	require.NoError(t, err)
}

func TestMarkReadChecksOwnership(t *testing.T) {
	repo := notificationrepofake.NewFakeNotificationRepo()
	service := notifications.NewService(repo, nil)

	n, err := service.Create(context.Background(), "owner-1", nil, "Title", "Body")
	require.NoError(t, err)

	// Another owner cannot see or flag the notification.
	err = service.MarkRead(context.Background(), n.ID, "owner-2")
	require.ErrorIs(t, err, notifications.ErrNotFound)

	require.NoError(t, service.MarkRead(context.Background(), n.ID, "owner-1"))

	list, err := service.ListForOwner(context.Background(), "owner-1", 10)
	require.NoError(t, err)
	require.True(t, list[0].Read)
}

func TestDelete(t *testing.T) {
	repo := notificationrepofake.NewFakeNotificationRepo()
	service := notifications.NewService(repo, nil)

	n, err := service.Create(context.Background(), "owner-1", nil, "Title", "Body")
	require.NoError(t, err)

	require.ErrorIs(t, service.Delete(context.Background(), n.ID, "owner-2"), notifications.ErrNotFound)
	require.NoError(t, service.Delete(context.Background(), n.ID, "owner-1"))
	require.ErrorIs(t, service.Delete(context.Background(), n.ID, "owner-1"), notifications.ErrNotFound)
}
