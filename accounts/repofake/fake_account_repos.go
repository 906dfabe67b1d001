package accountrepofake

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stayware/go-property-server/accounts"
)

var _ accounts.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*accounts.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*accounts.User),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *accounts.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*accounts.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if _, ok := ur.emailIds[email]; !ok {
		return nil, accounts.ErrNotFound
	}
	return ur.users[ur.emailIds[email]], nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*accounts.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if _, ok := ur.users[id]; !ok {
		return nil, accounts.ErrNotFound
	}
	return ur.users[id], nil
}

var _ accounts.AdminRepo = (*FakeAdminRepo)(nil)

type FakeAdminRepo struct {
	admins   map[string]*accounts.Admin
	emailIds map[string]string
	lock     sync.RWMutex
}

func NewFakeAdminRepo() *FakeAdminRepo {
	return &FakeAdminRepo{
		admins:   make(map[string]*accounts.Admin),
		emailIds: make(map[string]string),
	}
}

func (ar *FakeAdminRepo) Create(_ context.Context, admin *accounts.Admin) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	ar.admins[admin.ID] = admin
	ar.emailIds[admin.Email] = admin.ID
	return nil
}

func (ar *FakeAdminRepo) GetByEmail(_ context.Context, email string) (*accounts.Admin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	if _, ok := ar.emailIds[email]; !ok {
		return nil, accounts.ErrNotFound
	}
	return ar.admins[ar.emailIds[email]], nil
}

func (ar *FakeAdminRepo) GetByID(_ context.Context, id string) (*accounts.Admin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	if _, ok := ar.admins[id]; !ok {
		return nil, accounts.ErrNotFound
	}
	return ar.admins[id], nil
}
