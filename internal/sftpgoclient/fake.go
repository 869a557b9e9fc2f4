package sftpgoclient

import (
	"context"
	"net/http"
	"sync"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
)

// FakeClient is an in-memory Client for tests. Errors maps a method name
// (e.g. "CreateUser") to the error that method returns.
type FakeClient struct {
	mu      sync.Mutex
	Users   map[string]*User
	Folders map[string]*Folder
	Errors  map[string]error
	Calls   []string
	nextID  int64
}

var _ Client = &FakeClient{}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Users:   make(map[string]*User),
		Folders: make(map[string]*Folder),
		Errors:  make(map[string]error),
	}
}

func (f *FakeClient) record(method string) error {
	f.Calls = append(f.Calls, method)
	return f.Errors[method]
}

// CallCount returns how many times method was invoked.
func (f *FakeClient) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *FakeClient) GetUser(_ context.Context, username string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("GetUser"); err != nil {
		return nil, err
	}
	user, ok := f.Users[username]
	if !ok {
		return nil, operrors.NewExternalAPIError("get_user", http.StatusNotFound, ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *FakeClient) CreateUser(_ context.Context, user *User) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("CreateUser"); err != nil {
		return nil, err
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.Users[user.Username] = &stored
	copied := stored
	return &copied, nil
}

func (f *FakeClient) UpdateUser(_ context.Context, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("UpdateUser"); err != nil {
		return err
	}
	if _, ok := f.Users[user.Username]; !ok {
		return operrors.NewExternalAPIError("update_user", http.StatusNotFound, ErrNotFound)
	}
	stored := *user
	f.Users[user.Username] = &stored
	return nil
}

func (f *FakeClient) DeleteUser(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("DeleteUser"); err != nil {
		return err
	}
	if _, ok := f.Users[username]; !ok {
		return operrors.NewExternalAPIError("delete_user", http.StatusNotFound, ErrNotFound)
	}
	delete(f.Users, username)
	return nil
}

func (f *FakeClient) GetFolder(_ context.Context, name string) (*Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("GetFolder"); err != nil {
		return nil, err
	}
	folder, ok := f.Folders[name]
	if !ok {
		return nil, operrors.NewExternalAPIError("get_folder", http.StatusNotFound, ErrNotFound)
	}
	copied := *folder
	return &copied, nil
}

func (f *FakeClient) CreateFolder(_ context.Context, folder *Folder) (*Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("CreateFolder"); err != nil {
		return nil, err
	}
	f.nextID++
	stored := *folder
	stored.ID = f.nextID
	f.Folders[folder.Name] = &stored
	copied := stored
	return &copied, nil
}

func (f *FakeClient) UpdateFolder(_ context.Context, folder *Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("UpdateFolder"); err != nil {
		return err
	}
	if _, ok := f.Folders[folder.Name]; !ok {
		return operrors.NewExternalAPIError("update_folder", http.StatusNotFound, ErrNotFound)
	}
	stored := *folder
	f.Folders[folder.Name] = &stored
	return nil
}

func (f *FakeClient) DeleteFolder(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("DeleteFolder"); err != nil {
		return err
	}
	if _, ok := f.Folders[name]; !ok {
		return operrors.NewExternalAPIError("delete_folder", http.StatusNotFound, ErrNotFound)
	}
	delete(f.Folders, name)
	return nil
}
