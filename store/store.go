// Package store provides durable persistence for the session token pair.
package store

import (
	"context"
	"errors"
)

// Storage keys for the two persisted credentials. The names match the keys
// the mobile builds use in their platform keychains, so a device migrating
// between builds keeps its session.
const (
	KeyAccessToken  = "authToken"
	KeyRefreshToken = "refreshToken"
)

// ErrNotFound is returned by Get when no value is stored under the key.
// An absent key is an expected state (anonymous session), not a failure.
var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store for the token pair. Implementations
// must be safe for concurrent use. Remove of a missing key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
