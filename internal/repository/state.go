// Package repository provides the persistence layer between the services
// and the key-value storage backend. Each store serializes its entire
// state to a dedicated per-user key as JSON. Read failures are degraded to
// "no prior data": a storage error yields the zero state with a log line,
// and a corrupt value is logged and its key cleared so the next write
// starts clean. Persistence faults must never break a user action.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/lusotown/community-platform/internal/storage"
)

// loadState reads and unmarshals the JSON state under key into v. A missing
// key leaves v untouched and returns false. Storage and decode failures are
// logged; a corrupt value additionally gets its key deleted.
func loadState(ctx context.Context, store storage.Store, key string, v any) bool {
	b, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		log.Printf("repository: read %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		log.Printf("repository: corrupt state at %s, clearing: %v", key, err)
		if derr := store.Delete(ctx, key); derr != nil {
			log.Printf("repository: clear %s failed: %v", key, derr)
		}
		return false
	}
	return true
}

// saveState marshals v and writes it under key. The error is returned for
// callers that want to log it; services treat a failed write as non-fatal.
func saveState(ctx context.Context, store storage.Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, b)
}
