package storefakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-recipes-client/store"
)

var _ store.Store = (*FakeStore)(nil)

// FakeStore is an in-memory Store for tests. Setting Err makes every
// operation fail with it, to simulate a broken storage backend.
type FakeStore struct {
	lock   sync.Mutex
	values map[string]string

	Err error

	setCalls    int
	removeCalls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		values: make(map[string]string),
	}
}

func (fs *FakeStore) Get(ctx context.Context, key string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.Err != nil {
		return "", fs.Err
	}

	value, ok := fs.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return value, nil
}

func (fs *FakeStore) Set(ctx context.Context, key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.setCalls++
	if fs.Err != nil {
		return fs.Err
	}
	fs.values[key] = value
	return nil
}

func (fs *FakeStore) Remove(ctx context.Context, key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.removeCalls++
	if fs.Err != nil {
		return fs.Err
	}
	delete(fs.values, key)
	return nil
}

// Seed stores a value directly, bypassing error injection and call counts.
func (fs *FakeStore) Seed(key, value string) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.values[key] = value
}

// Len reports how many values are currently stored.
func (fs *FakeStore) Len() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return len(fs.values)
}

func (fs *FakeStore) SetCallCount() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.setCalls
}

func (fs *FakeStore) RemoveCallCount() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.removeCalls
}
