package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/payment"
	"github.com/lusotown/community-platform/internal/repository"
	"github.com/lusotown/community-platform/internal/storage"
)

type fakeProvider struct {
	sessionID string
	err       error

	cancelled []string
	upgraded  []model.Tier
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, _ payment.CheckoutRequest) (string, error) {
	return f.sessionID, f.err
}

func (f *fakeProvider) CancelSubscription(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeProvider) UpgradeSubscription(_ context.Context, _ string, tier model.Tier) error {
	if f.err != nil {
		return f.err
	}
	f.upgraded = append(f.upgraded, tier)
	return nil
}

type fakeVerifier struct {
	valid bool
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, _, _ string) (bool, error) {
	return f.valid, f.err
}

func newSubscriptionService(provider *fakeProvider, verifier *fakeVerifier) (*SubscriptionService, *repository.SubscriptionRepo) {
	repo := repository.NewSubscriptionRepo(storage.NewMemoryStore())
	return NewSubscriptionService(repo, provider, verifier), repo
}

func fixedTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func activeSubscription(userID string, tier model.Tier, periodEnd time.Time) *model.Subscription {
	return &model.Subscription{
		ID:                     "sub-1",
		UserID:                 userID,
		ProviderSubscriptionID: "psub-1",
		Tier:                   tier,
		Plan:                   model.PlanMonthly,
		Status:                 model.StatusActive,
		CurrentPeriodEnd:       periodEnd,
	}
}

func TestSubscriptionService_TierAndDiscount(t *testing.T) {
	svc, repo := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	// no subscription at all reads as free
	assert.Equal(t, model.TierFree, svc.Tier(ctx, "u1"))
	assert.Equal(t, 0, svc.ServiceDiscount(ctx, "u1"))
	assert.False(t, svc.HasActive(ctx, "u1"))

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(24*time.Hour))))
	assert.Equal(t, model.TierCommunity, svc.Tier(ctx, "u1"))
	assert.Equal(t, 10, svc.ServiceDiscount(ctx, "u1"))
	assert.True(t, svc.HasActive(ctx, "u1"))

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierAmbassador, now.Add(24*time.Hour))))
	assert.Equal(t, 20, svc.ServiceDiscount(ctx, "u1"))
}

func TestSubscriptionService_ActiveStatusExpiredPeriod(t *testing.T) {
	svc, repo := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	// status still says active but the paid period is over
	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(-time.Hour))))

	assert.False(t, svc.HasActive(ctx, "u1"))
	assert.Equal(t, model.TierFree, svc.Tier(ctx, "u1"))
	assert.Equal(t, 0, svc.ServiceDiscount(ctx, "u1"))
}

func TestSubscriptionService_FreeTierDailyMatchQuota(t *testing.T) {
	svc, _ := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := svc.TrackFeatureUsage(ctx, "u1", model.FeatureMatch)
		require.NoError(t, err)
		assert.True(t, ok, "match %d should be within the free quota", i+1)
	}

	ok, err := svc.CanUseFeature(ctx, "u1", model.FeatureMatch)
	require.NoError(t, err)
	assert.False(t, ok)

	// a rejected track leaves the counter where it was
	ok, err = svc.TrackFeatureUsage(ctx, "u1", model.FeatureMatch)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, svc.Usage(ctx, "u1").DailyMatchesUsed)
}

func TestSubscriptionService_DailyQuotaResetsNextDay(t *testing.T) {
	svc, _ := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T23:30:00Z")
	svc.Now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := svc.TrackFeatureUsage(ctx, "u1", model.FeatureMatch)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// next calendar day: the check passes without touching storage
	now = fixedTime(t, "2024-06-11T00:30:00Z")
	ok, err := svc.CanUseFeature(ctx, "u1", model.FeatureMatch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, svc.Usage(ctx, "u1").DailyMatchesUsed)

	// the durable reset happens on the next consume
	ok, err = svc.TrackFeatureUsage(ctx, "u1", model.FeatureMatch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, svc.Usage(ctx, "u1").DailyMatchesUsed)
}

func TestSubscriptionService_MonthRollResetsMonthlyCounters(t *testing.T) {
	svc, _ := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-30T12:00:00Z")
	svc.Now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := svc.TrackFeatureUsage(ctx, "u1", model.FeatureMessage)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := svc.CanUseFeature(ctx, "u1", model.FeatureMessage)
	require.NoError(t, err)
	assert.False(t, ok)

	now = fixedTime(t, "2024-07-01T12:00:00Z")
	ok, err = svc.TrackFeatureUsage(ctx, "u1", model.FeatureMessage)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, svc.Usage(ctx, "u1").MonthlyMessagesUsed)
}

func TestSubscriptionService_UnlimitedFeature(t *testing.T) {
	svc, repo := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(24*time.Hour))))

	for i := 0; i < 10; i++ {
		ok, err := svc.TrackFeatureUsage(ctx, "u1", model.FeatureMatch)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, 10, svc.Usage(ctx, "u1").DailyMatchesUsed)
}

func TestSubscriptionService_ZeroQuotaFeature(t *testing.T) {
	svc, _ := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})
	ctx := context.Background()

	ok, err := svc.CanUseFeature(ctx, "u1", model.FeaturePremiumEvent)
	require.NoError(t, err)
	assert.False(t, ok, "free tier has no premium event allowance")
}

func TestSubscriptionService_UnknownFeature(t *testing.T) {
	svc, _ := newSubscriptionService(&fakeProvider{}, &fakeVerifier{})

	_, err := svc.CanUseFeature(context.Background(), "u1", model.Feature("teleport"))
	assert.ErrorIs(t, err, model.ErrUnknownFeature)
}

func TestSubscriptionService_CreateSubscription(t *testing.T) {
	svc, repo := newSubscriptionService(&fakeProvider{sessionID: "cs_123"}, &fakeVerifier{})
	ctx := context.Background()

	sessionID, err := svc.CreateSubscription(ctx, "u1", "ana@example.com", "Ana", model.TierCommunity, model.PlanMonthly)

	require.NoError(t, err)
	assert.Equal(t, "cs_123", sessionID)

	sub := repo.LoadSubscription(ctx, "u1")
	require.NotNil(t, sub)
	assert.Equal(t, model.TierCommunity, sub.Tier)
	assert.Equal(t, model.StatusInactive, sub.Status)
}

func TestSubscriptionService_CreateSubscription_ProviderFailure(t *testing.T) {
	svc, repo := newSubscriptionService(&fakeProvider{err: payment.ErrProvider}, &fakeVerifier{})
	ctx := context.Background()

	_, err := svc.CreateSubscription(ctx, "u1", "ana@example.com", "Ana", model.TierCommunity, model.PlanMonthly)

	assert.ErrorIs(t, err, payment.ErrProvider)
	assert.Nil(t, repo.LoadSubscription(ctx, "u1"))
}

func TestSubscriptionService_CancelSubscription(t *testing.T) {
	provider := &fakeProvider{}
	svc, repo := newSubscriptionService(provider, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	assert.ErrorIs(t, svc.CancelSubscription(ctx, "u1"), model.ErrNoSubscription)

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(24*time.Hour))))
	require.NoError(t, svc.CancelSubscription(ctx, "u1"))

	assert.Equal(t, []string{"psub-1"}, provider.cancelled)
	assert.Equal(t, model.StatusCancelled, repo.LoadSubscription(ctx, "u1").Status)
}

func TestSubscriptionService_CancelSubscription_ProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider down")}
	svc, repo := newSubscriptionService(provider, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(24*time.Hour))))

	require.Error(t, svc.CancelSubscription(ctx, "u1"))
	assert.Equal(t, model.StatusActive, repo.LoadSubscription(ctx, "u1").Status)
}

func TestSubscriptionService_UpgradeSubscription(t *testing.T) {
	provider := &fakeProvider{}
	svc, repo := newSubscriptionService(provider, &fakeVerifier{})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(24*time.Hour))))
	require.NoError(t, svc.UpgradeSubscription(ctx, "u1", model.TierAmbassador))

	assert.Equal(t, []model.Tier{model.TierAmbassador}, provider.upgraded)
	assert.Equal(t, model.TierAmbassador, repo.LoadSubscription(ctx, "u1").Tier)
}

func TestSubscriptionService_VerifyStudent(t *testing.T) {
	svc, repo := newSubscriptionService(&fakeProvider{}, &fakeVerifier{valid: true})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(24*time.Hour))))

	valid, err := svc.VerifyStudent(ctx, "u1", "ana@ucl.ac.uk", "ucl")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.True(t, repo.LoadSubscription(ctx, "u1").StudentVerified)
}

func TestSubscriptionService_VerifyStudent_Invalid(t *testing.T) {
	svc, repo := newSubscriptionService(&fakeProvider{}, &fakeVerifier{valid: false})
	ctx := context.Background()
	now := fixedTime(t, "2024-06-10T12:00:00Z")
	svc.Now = func() time.Time { return now }

	require.NoError(t, repo.SaveSubscription(ctx, "u1", activeSubscription("u1", model.TierCommunity, now.Add(24*time.Hour))))

	valid, err := svc.VerifyStudent(ctx, "u1", "ana@example.com", "ucl")
	require.NoError(t, err)
	assert.False(t, valid)
	assert.False(t, repo.LoadSubscription(ctx, "u1").StudentVerified)
}
