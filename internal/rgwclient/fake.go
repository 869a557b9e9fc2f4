package rgwclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/ceph/go-ceph/rgw/admin"
)

// FakeRgwClient keeps users in memory and hands out deterministic keys.
type FakeRgwClient struct {
	mu    sync.Mutex
	Users map[string]admin.User
	// Err, when set, is returned by every call.
	Err error
}

var _ RgwClient = &FakeRgwClient{}

func NewFakeRgwClient() *FakeRgwClient {
	return &FakeRgwClient{Users: make(map[string]admin.User)}
}

func (f *FakeRgwClient) GetUser(_ context.Context, user admin.User) (admin.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return admin.User{}, f.Err
	}
	existing, ok := f.Users[user.ID]
	if !ok {
		return admin.User{}, admin.ErrNoSuchUser
	}
	return existing, nil
}

func (f *FakeRgwClient) CreateUser(_ context.Context, user admin.User) (admin.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return admin.User{}, f.Err
	}
	if _, ok := f.Users[user.ID]; ok {
		return admin.User{}, admin.ErrUserExists
	}
	user.Keys = []admin.UserKeySpec{{
		User:      user.ID,
		AccessKey: fmt.Sprintf("AK-%s", user.ID),
		SecretKey: fmt.Sprintf("SK-%s", user.ID),
	}}
	f.Users[user.ID] = user
	return user, nil
}

func (f *FakeRgwClient) RemoveUser(_ context.Context, user admin.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	if _, ok := f.Users[user.ID]; !ok {
		return admin.ErrNoSuchUser
	}
	delete(f.Users, user.ID)
	return nil
}
