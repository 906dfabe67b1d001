package notificationrepofake

import (
	"context"
	"sort"
	"sync"

	"github.com/stayware/go-property-server/notifications"
)

var _ notifications.Repo = (*FakeNotificationRepo)(nil)

type FakeNotificationRepo struct {
	items map[string]*notifications.Notification
	lock  sync.RWMutex
}

func NewFakeNotificationRepo() *FakeNotificationRepo {
	return &FakeNotificationRepo{items: make(map[string]*notifications.Notification)}
}

func (nr *FakeNotificationRepo) Create(_ context.Context, n *notifications.Notification) error {
	nr.lock.Lock()
	defer nr.lock.Unlock()

	copied := *n
	nr.items[n.ID] = &copied
	return nil
}

func (nr *FakeNotificationRepo) ListForOwner(_ context.Context, ownerID string, limit int) ([]*notifications.Notification, error) {
	nr.lock.RLock()
	defer nr.lock.RUnlock()

	list := make([]*notifications.Notification, 0)
	for _, n := range nr.items {
		if n.OwnerID == ownerID {
			list = append(list, n)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (nr *FakeNotificationRepo) MarkRead(_ context.Context, id, ownerID string) error {
	nr.lock.Lock()
	defer nr.lock.Unlock()

	n, ok := nr.items[id]
	if !ok || n.OwnerID != ownerID {
		return notifications.ErrNotFound
	}
	n.Read = true
	return nil
}

func (nr *FakeNotificationRepo) Delete(_ context.Context, id, ownerID string) error {
	nr.lock.Lock()
	defer nr.lock.Unlock()

	n, ok := nr.items[id]
	if !ok || n.OwnerID != ownerID {
		return notifications.ErrNotFound
	}
	delete(nr.items, id)
	return nil
}
