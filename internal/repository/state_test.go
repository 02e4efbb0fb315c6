package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

func TestLoadState_MissingKey(t *testing.T) {
	store := storage.NewMemoryStore()

	var items []model.CartItem
	ok := loadState(context.Background(), store, "cart:u1", &items)

	assert.False(t, ok)
	assert.Nil(t, items)
}

func TestLoadState_CorruptValueCleared(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "cart:u1", []byte("{not json")))

	var items []model.CartItem
	ok := loadState(ctx, store, "cart:u1", &items)

	assert.False(t, ok)
	// the bad value is gone so the next write starts from scratch
	_, err := store.Get(ctx, "cart:u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveThenLoadState(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	in := []model.CartItem{{ID: "i1", Category: model.CategoryProduct, Title: "Azulejo Print", PriceCents: 1500, Quantity: 2}}
	require.NoError(t, saveState(ctx, store, "cart:u1", in))

	var out []model.CartItem
	ok := loadState(ctx, store, "cart:u1", &out)

	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestSubscriptionRepo_NilWhenAbsent(t *testing.T) {
	repo := NewSubscriptionRepo(storage.NewMemoryStore())
	ctx := context.Background()

	assert.Nil(t, repo.LoadSubscription(ctx, "u1"))

	sub := &model.Subscription{ID: "s1", UserID: "u1", Tier: model.TierCommunity, Status: model.StatusActive}
	require.NoError(t, repo.SaveSubscription(ctx, "u1", sub))
	loaded := repo.LoadSubscription(ctx, "u1")
	require.NotNil(t, loaded)
	assert.Equal(t, model.TierCommunity, loaded.Tier)

	require.NoError(t, repo.DeleteSubscription(ctx, "u1"))
	assert.Nil(t, repo.LoadSubscription(ctx, "u1"))
}

func TestNotificationRepo_DefaultPreferences(t *testing.T) {
	repo := NewNotificationRepo(storage.NewMemoryStore())
	ctx := context.Background()

	prefs := repo.LoadPreferences(ctx, "u1")

	assert.Equal(t, "u1", prefs.UserID)
	require.Len(t, prefs.Channels, len(model.AllChannels))
	for ch, cp := range prefs.Channels {
		assert.True(t, cp.Enabled, "channel %s starts enabled", ch)
		assert.Equal(t, model.FreqImmediate, cp.Frequency)
	}
}

func TestPreferenceRepo_Language(t *testing.T) {
	repo := NewPreferenceRepo(storage.NewMemoryStore())
	ctx := context.Background()

	assert.Equal(t, model.LanguageEN, repo.Language(ctx, "u1"))

	require.NoError(t, repo.SetLanguage(ctx, "u1", model.LanguagePT))
	assert.Equal(t, model.LanguagePT, repo.Language(ctx, "u1"))

	assert.Error(t, repo.SetLanguage(ctx, "u1", "fr"))
	assert.Equal(t, model.LanguagePT, repo.Language(ctx, "u1"))
}
