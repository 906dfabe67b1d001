package tokenrepofake

import (
	"context"
	"sync"
	"time"

	"github.com/stayware/go-property-server/internal/utils"
	"github.com/stayware/go-property-server/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

type FakeTokenRepo struct {
	tokens map[string]*token.RefreshToken // keyed by ID
	values map[string]string              // opaque value to ID
	lock   sync.RWMutex

	// CreateErr, when set, is returned by Create. Lets tests exercise
	// the session-creation failure path.
	CreateErr error

	// MarkRevokedErr, when set, is returned by MarkRevoked. Lets tests
	// exercise the lost-rotation-race path.
	MarkRevokedErr error
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		tokens: make(map[string]*token.RefreshToken),
		values: make(map[string]string),
	}
}

func (tr *FakeTokenRepo) Get(_ context.Context, value string) (*token.RefreshToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	id, ok := tr.values[value]
	if !ok {
		return nil, token.ErrNotFound
	}
	copied := *tr.tokens[id]
	return &copied, nil
}

func (tr *FakeTokenRepo) Create(_ context.Context, rt *token.RefreshToken) error {
	if tr.CreateErr != nil {
		return tr.CreateErr
	}

	tr.lock.Lock()
	defer tr.lock.Unlock()

	copied := *rt
	tr.tokens[rt.ID] = &copied
	tr.values[rt.Value] = rt.ID
	return nil
}

func (tr *FakeTokenRepo) MarkRevoked(_ context.Context, id string, now time.Time) error {
	if tr.MarkRevokedErr != nil {
		return tr.MarkRevokedErr
	}

	tr.lock.Lock()
	defer tr.lock.Unlock()

	rt, ok := tr.tokens[id]
	if !ok || rt.RevokedAt != nil {
		return token.ErrNotFound
	}
	rt.RevokedAt = utils.Ptr(now)
	return nil
}

func (tr *FakeTokenRepo) DeleteByID(_ context.Context, id string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	rt, ok := tr.tokens[id]
	if !ok {
		return token.ErrNotFound
	}
	delete(tr.values, rt.Value)
	delete(tr.tokens, id)
	return nil
}

// ActiveCountForOwner reports how many unrevoked records the owner
// holds. Test helper.
func (tr *FakeTokenRepo) ActiveCountForOwner(owner token.Owner) int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	count := 0
	for _, rt := range tr.tokens {
		if rt.Owner == owner && rt.RevokedAt == nil {
			count++
		}
	}
	return count
}

func (tr *FakeTokenRepo) RevokeAllActiveForOwner(_ context.Context, owner token.Owner, now time.Time) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	for _, rt := range tr.tokens {
		if rt.Owner == owner && rt.RevokedAt == nil {
			rt.RevokedAt = utils.Ptr(now)
		}
	}
	return nil
}
