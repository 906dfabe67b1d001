package loyaltyrepofake

import (
	"context"
	"sort"
	"sync"

	"github.com/stayware/go-property-server/loyalty"
)

var _ loyalty.Repo = (*FakeLedgerRepo)(nil)

type FakeLedgerRepo struct {
	entries []*loyalty.Entry
	lock    sync.RWMutex
}

func NewFakeLedgerRepo() *FakeLedgerRepo {
	return &FakeLedgerRepo{}
}

func (lr *FakeLedgerRepo) Append(_ context.Context, e *loyalty.Entry) error {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	copied := *e
	lr.entries = append(lr.entries, &copied)
	return nil
}

func (lr *FakeLedgerRepo) ListForOwner(_ context.Context, ownerID string, limit int) ([]*loyalty.Entry, error) {
	lr.lock.RLock()
	defer lr.lock.RUnlock()

	list := make([]*loyalty.Entry, 0)
	for _, e := range lr.entries {
		if e.OwnerID == ownerID {
			list = append(list, e)
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

func (lr *FakeLedgerRepo) Balance(_ context.Context, ownerID string) (int, error) {
	lr.lock.RLock()
	defer lr.lock.RUnlock()

	balance := 0
	for _, e := range lr.entries {
		if e.OwnerID == ownerID {
			balance += e.Delta
		}
	}
	return balance, nil
}
