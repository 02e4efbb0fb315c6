package repository

import (
	"context"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

// CartRepo persists cart items and reservations. The cart state and the
// reservation list live under separate keys so a corrupt value in one never
// takes the other down with it.
type CartRepo struct {
	store storage.Store
}

// NewCartRepo returns a CartRepo bound to the given storage backend.
func NewCartRepo(store storage.Store) *CartRepo { return &CartRepo{store: store} }

func cartKey(userID string) string         { return "cart:" + userID }
func reservationsKey(userID string) string { return "reservations:" + userID }

// LoadItems returns the user's cart items, empty on missing or unreadable
// state.
func (r *CartRepo) LoadItems(ctx context.Context, userID string) []model.CartItem {
	var items []model.CartItem
	loadState(ctx, r.store, cartKey(userID), &items)
	return items
}

// SaveItems writes the full item list.
func (r *CartRepo) SaveItems(ctx context.Context, userID string, items []model.CartItem) error {
	return saveState(ctx, r.store, cartKey(userID), items)
}

// LoadReservations returns the user's reservations, empty on missing or
// unreadable state.
func (r *CartRepo) LoadReservations(ctx context.Context, userID string) []model.Reservation {
	var res []model.Reservation
	loadState(ctx, r.store, reservationsKey(userID), &res)
	return res
}

// SaveReservations writes the full reservation list.
func (r *CartRepo) SaveReservations(ctx context.Context, userID string, res []model.Reservation) error {
	return saveState(ctx, r.store, reservationsKey(userID), res)
}
