package repository

import (
	"context"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

// SavedRepo persists the user's bookmarked items.
type SavedRepo struct {
	store storage.Store
}

// NewSavedRepo returns a SavedRepo bound to the given storage backend.
func NewSavedRepo(store storage.Store) *SavedRepo { return &SavedRepo{store: store} }

func savedKey(userID string) string { return "saved:" + userID }

// Load returns the user's saved items, empty on missing or unreadable state.
func (r *SavedRepo) Load(ctx context.Context, userID string) []model.SavedItem {
	var items []model.SavedItem
	loadState(ctx, r.store, savedKey(userID), &items)
	return items
}

// Save writes the full saved-item list.
func (r *SavedRepo) Save(ctx context.Context, userID string, items []model.SavedItem) error {
	return saveState(ctx, r.store, savedKey(userID), items)
}
