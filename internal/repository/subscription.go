package repository

import (
	"context"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

// SubscriptionRepo persists the subscription record and the usage counters
// under separate keys.
type SubscriptionRepo struct {
	store storage.Store
}

// NewSubscriptionRepo returns a SubscriptionRepo bound to the given storage
// backend.
func NewSubscriptionRepo(store storage.Store) *SubscriptionRepo {
	return &SubscriptionRepo{store: store}
}

func subscriptionKey(userID string) string { return "subscription:" + userID }
func usageKey(userID string) string        { return "usage:" + userID }

// LoadSubscription returns the stored subscription, or nil when the user
// has none on record.
func (r *SubscriptionRepo) LoadSubscription(ctx context.Context, userID string) *model.Subscription {
	var sub model.Subscription
	if !loadState(ctx, r.store, subscriptionKey(userID), &sub) {
		return nil
	}
	return &sub
}

// SaveSubscription writes the subscription record.
func (r *SubscriptionRepo) SaveSubscription(ctx context.Context, userID string, sub *model.Subscription) error {
	return saveState(ctx, r.store, subscriptionKey(userID), sub)
}

// DeleteSubscription removes the subscription record.
func (r *SubscriptionRepo) DeleteSubscription(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, subscriptionKey(userID))
}

// LoadUsage returns the stored usage counters. The second return value is
// false when the user has no usage on record yet.
func (r *SubscriptionRepo) LoadUsage(ctx context.Context, userID string) (model.Usage, bool) {
	var u model.Usage
	ok := loadState(ctx, r.store, usageKey(userID), &u)
	return u, ok
}

// SaveUsage writes the usage counters.
func (r *SubscriptionRepo) SaveUsage(ctx context.Context, userID string, u model.Usage) error {
	return saveState(ctx, r.store, usageKey(userID), u)
}
