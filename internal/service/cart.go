// Package service implements the business rules of the community platform:
// cart and reservations, saved items, the networking graph, subscription
// tiers and usage quotas, notifications with their preference matrix, and
// the cross-feature recommendation engine. Services are constructed with
// their repositories and external collaborators injected; storage write
// failures are logged and never surfaced to the caller, while business-rule
// violations come back as sentinel errors from the model package with the
// store left untouched.
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/repository"
)

// persist logs a failed state write. Writes are best-effort: a storage
// fault must not fail the user action that caused it.
func persist(what string, err error) {
	if err != nil {
		log.Printf("service: persist %s failed: %v", what, err)
	}
}

// CartService manages the shopping cart and the reservations created from
// it.
type CartService struct {
	repo *repository.CartRepo
}

// NewCartService constructs a CartService.
func NewCartService(repo *repository.CartRepo) *CartService {
	return &CartService{repo: repo}
}

// Items returns the user's current cart.
func (s *CartService) Items(ctx context.Context, userID string) []model.CartItem {
	return s.repo.LoadItems(ctx, userID)
}

// AddToCart adds an item to the cart. A quantity below 1 is treated as 1.
//
// Duplicate handling: an event with the same title and date as an existing
// cart entry is rejected outright; any other item matching an existing
// entry's (category, title) increments that entry's quantity instead of
// inserting a new line. Either path still enforces the max-quantity and
// spots-left caps, rejecting without mutation on violation.
func (s *CartService) AddToCart(ctx context.Context, userID string, item model.CartItem, quantity int) (model.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	items := s.repo.LoadItems(ctx, userID)
	for i, existing := range items {
		if existing.IsEvent() && item.IsEvent() &&
			existing.Title == item.Title && sameEventDate(existing.Event, item.Event) {
			return model.CartItem{}, model.ErrDuplicateEventBooking
		}
		if existing.Category == item.Category && existing.Title == item.Title {
			newQty := existing.Quantity + quantity
			if err := checkQuantity(existing, newQty); err != nil {
				return model.CartItem{}, err
			}
			items[i].Quantity = newQty
			items[i].UpdatedAt = time.Now().UTC()
			persist("cart", s.repo.SaveItems(ctx, userID, items))
			return items[i], nil
		}
	}

	if err := checkQuantity(item, quantity); err != nil {
		return model.CartItem{}, err
	}

	now := time.Now().UTC()
	item.ID = uuid.New().String()
	item.Quantity = quantity
	item.AddedAt = now
	item.UpdatedAt = now
	if item.Currency == "" {
		item.Currency = "GBP"
	}
	items = append(items, item)
	persist("cart", s.repo.SaveItems(ctx, userID, items))
	return item, nil
}

// UpdateQuantity sets an item's quantity. A target of zero or below removes
// the item. A target above the item's max quantity or the event's remaining
// spots is rejected and the item left unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	items := s.repo.LoadItems(ctx, userID)
	for i, item := range items {
		if item.ID != itemID {
			continue
		}
		if quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
			persist("cart", s.repo.SaveItems(ctx, userID, items))
			return nil
		}
		if err := checkQuantity(item, quantity); err != nil {
			return err
		}
		items[i].Quantity = quantity
		items[i].UpdatedAt = time.Now().UTC()
		persist("cart", s.repo.SaveItems(ctx, userID, items))
		return nil
	}
	return model.ErrItemNotFound
}

// RemoveFromCart deletes an item unconditionally.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID string) error {
	items := s.repo.LoadItems(ctx, userID)
	for i, item := range items {
		if item.ID == itemID {
			items = append(items[:i], items[i+1:]...)
			persist("cart", s.repo.SaveItems(ctx, userID, items))
			return nil
		}
	}
	return model.ErrItemNotFound
}

// ClearCart removes every item.
func (s *CartService) ClearCart(ctx context.Context, userID string) {
	persist("cart", s.repo.SaveItems(ctx, userID, []model.CartItem{}))
}

// Count is the sum of quantities across the cart.
func (s *CartService) Count(ctx context.Context, userID string) int {
	total := 0
	for _, item := range s.repo.LoadItems(ctx, userID) {
		total += item.Quantity
	}
	return total
}

// Total is the sum of price times quantity across the cart, in pence.
func (s *CartService) Total(ctx context.Context, userID string) int64 {
	var total int64
	for _, item := range s.repo.LoadItems(ctx, userID) {
		total += item.LineTotalCents()
	}
	return total
}

// ReservationDetails carries the optional fields of a reservation request.
type ReservationDetails struct {
	Notes            string
	Dietary          string
	EmergencyContact string
}

// CreateReservation converts a cart item into a pending reservation. The
// requested quantity must not exceed the cart item's quantity and at most
// one pending reservation may exist per item id. On success the source
// cart item is removed from the cart.
func (s *CartService) CreateReservation(ctx context.Context, userID, itemID string, quantity int, details ReservationDetails) (model.Reservation, error) {
	items := s.repo.LoadItems(ctx, userID)
	idx := -1
	for i, item := range items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Reservation{}, model.ErrItemNotFound
	}
	item := items[idx]
	if quantity < 1 || quantity > item.Quantity {
		return model.Reservation{}, model.ErrInvalidQuantity
	}

	reservations := s.repo.LoadReservations(ctx, userID)
	for _, res := range reservations {
		if res.CartItemID == itemID && res.Status == model.ReservationPending {
			return model.Reservation{}, model.ErrReservationExists
		}
	}

	res := model.Reservation{
		ID:               uuid.New().String(),
		CartItemID:       itemID,
		UserID:           userID,
		Title:            item.Title,
		Quantity:         quantity,
		Status:           model.ReservationPending,
		TotalCents:       item.PriceCents * int64(quantity),
		Currency:         item.Currency,
		Notes:            details.Notes,
		Dietary:          details.Dietary,
		EmergencyContact: details.EmergencyContact,
		CreatedAt:        time.Now().UTC(),
	}
	reservations = append(reservations, res)
	persist("reservations", s.repo.SaveReservations(ctx, userID, reservations))

	items = append(items[:idx], items[idx+1:]...)
	persist("cart", s.repo.SaveItems(ctx, userID, items))
	return res, nil
}

// Reservations returns the user's reservations.
func (s *CartService) Reservations(ctx context.Context, userID string) []model.Reservation {
	return s.repo.LoadReservations(ctx, userID)
}

// checkQuantity validates a target quantity against the item's caps.
func checkQuantity(item model.CartItem, quantity int) error {
	if item.MaxQuantity != nil && quantity > *item.MaxQuantity {
		return model.ErrMaxQuantity
	}
	if item.IsEvent() && item.Event != nil && item.Event.SpotsLeft != nil && quantity > *item.Event.SpotsLeft {
		return model.ErrNotEnoughSpots
	}
	return nil
}

func sameEventDate(a, b *model.EventDetails) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Date == b.Date
}
