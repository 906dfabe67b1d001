package tenantrepofake

import (
	"context"
	"sync"

	"github.com/stayware/go-property-server/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

type FakeTenantRepo struct {
	tenants map[string]*tenants.Tenant
	lock    sync.RWMutex
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{tenants: make(map[string]*tenants.Tenant)}
}

func (tr *FakeTenantRepo) Get(_ context.Context, id string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	t, ok := tr.tenants[id]
	if !ok {
		return nil, tenants.ErrNotFound
	}
	return t, nil
}

func (tr *FakeTenantRepo) Upsert(_ context.Context, tenant *tenants.Tenant) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.tenants[tenant.ID] = tenant
	return nil
}
