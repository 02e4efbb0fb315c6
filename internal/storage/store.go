// Package storage defines the key-value contract every store persists
// through, plus the Redis and in-memory implementations. Each store keeps
// its entire state as a single JSON value under a dedicated per-user key,
// so any backend that can get, set and delete opaque values can serve as
// the persistence layer.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence contract used by all repositories.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
