package repository

import (
	"context"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

// NotificationRepo persists the notification list and the preference matrix.
type NotificationRepo struct {
	store storage.Store
}

// NewNotificationRepo returns a NotificationRepo bound to the given storage
// backend.
func NewNotificationRepo(store storage.Store) *NotificationRepo {
	return &NotificationRepo{store: store}
}

func notificationsKey(userID string) string { return "notifications:" + userID }
func preferencesKey(userID string) string   { return "notification_prefs:" + userID }

// LoadNotifications returns the user's notifications, newest first, empty
// on missing or unreadable state.
func (r *NotificationRepo) LoadNotifications(ctx context.Context, userID string) []model.Notification {
	var list []model.Notification
	loadState(ctx, r.store, notificationsKey(userID), &list)
	return list
}

// SaveNotifications writes the full notification list.
func (r *NotificationRepo) SaveNotifications(ctx context.Context, userID string, list []model.Notification) error {
	return saveState(ctx, r.store, notificationsKey(userID), list)
}

// LoadPreferences returns the stored preference matrix, or the defaults
// when none has been stored yet.
func (r *NotificationRepo) LoadPreferences(ctx context.Context, userID string) model.Preferences {
	var prefs model.Preferences
	if !loadState(ctx, r.store, preferencesKey(userID), &prefs) {
		return model.DefaultPreferences(userID)
	}
	return prefs
}

// SavePreferences writes the preference matrix.
func (r *NotificationRepo) SavePreferences(ctx context.Context, userID string, prefs model.Preferences) error {
	return saveState(ctx, r.store, preferencesKey(userID), prefs)
}
