package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/repository"
)

// FavoritesService manages the saved-items store. Uniqueness is enforced
// on the (category, title) pair.
type FavoritesService struct {
	repo *repository.SavedRepo
}

// NewFavoritesService constructs a FavoritesService.
func NewFavoritesService(repo *repository.SavedRepo) *FavoritesService {
	return &FavoritesService{repo: repo}
}

// Saved returns the user's saved items.
func (s *FavoritesService) Saved(ctx context.Context, userID string) []model.SavedItem {
	return s.repo.Load(ctx, userID)
}

// AddToSaved saves an item. A duplicate (category, title) is rejected.
func (s *FavoritesService) AddToSaved(ctx context.Context, userID string, item model.SavedItem) (model.SavedItem, error) {
	items := s.repo.Load(ctx, userID)
	for _, existing := range items {
		if existing.Category == item.Category && existing.Title == item.Title {
			return model.SavedItem{}, model.ErrAlreadySaved
		}
	}
	item.ID = uuid.New().String()
	item.SavedAt = time.Now().UTC()
	items = append(items, item)
	persist("saved", s.repo.Save(ctx, userID, items))
	return item, nil
}

// RemoveFromSaved deletes a saved item by id.
func (s *FavoritesService) RemoveFromSaved(ctx context.Context, userID, itemID string) error {
	items := s.repo.Load(ctx, userID)
	for i, item := range items {
		if item.ID == itemID {
			items = append(items[:i], items[i+1:]...)
			persist("saved", s.repo.Save(ctx, userID, items))
			return nil
		}
	}
	return model.ErrItemNotFound
}

// ToggleSaved is the primary entry point: it removes the item when an
// entry with the same (category, title) exists, otherwise saves it.
// The returned bool reports whether the item is saved after the call.
func (s *FavoritesService) ToggleSaved(ctx context.Context, userID string, item model.SavedItem) (bool, error) {
	items := s.repo.Load(ctx, userID)
	for i, existing := range items {
		if existing.Category == item.Category && existing.Title == item.Title {
			items = append(items[:i], items[i+1:]...)
			persist("saved", s.repo.Save(ctx, userID, items))
			return false, nil
		}
	}
	item.ID = uuid.New().String()
	item.SavedAt = time.Now().UTC()
	items = append(items, item)
	persist("saved", s.repo.Save(ctx, userID, items))
	return true, nil
}

// IsSaved reports membership by title alone. Callers that can disambiguate
// should prefer IsSavedItem; this form is kept because existing consumers
// key on title only.
func (s *FavoritesService) IsSaved(ctx context.Context, userID, title string) bool {
	for _, item := range s.repo.Load(ctx, userID) {
		if item.Title == title {
			return true
		}
	}
	return false
}

// IsSavedItem reports membership by the exact (category, title) pair.
func (s *FavoritesService) IsSavedItem(ctx context.Context, userID string, category model.ItemCategory, title string) bool {
	for _, item := range s.repo.Load(ctx, userID) {
		if item.Category == category && item.Title == title {
			return true
		}
	}
	return false
}
