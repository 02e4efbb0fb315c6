package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/payment"
	"github.com/lusotown/community-platform/internal/repository"
)

// PaymentProvider is the slice of the payment collaborator the
// subscription service needs.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (string, error)
	CancelSubscription(ctx context.Context, providerSubscriptionID string) error
	UpgradeSubscription(ctx context.Context, providerSubscriptionID string, tier model.Tier) error
}

// StudentVerifier validates an email against a university identifier.
type StudentVerifier interface {
	Verify(ctx context.Context, email, university string) (bool, error)
}

// SubscriptionService tracks the membership tier, enforces the per-tier
// usage quotas and drives the subscription lifecycle through the payment
// provider. Local subscription state is only updated after the provider
// reports success.
type SubscriptionService struct {
	repo     *repository.SubscriptionRepo
	payments PaymentProvider
	verifier StudentVerifier

	// Now is the clock used for quota resets and period checks.
	// Overridable in tests.
	Now func() time.Time
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(repo *repository.SubscriptionRepo, payments PaymentProvider, verifier StudentVerifier) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		payments: payments,
		verifier: verifier,
		Now:      time.Now,
	}
}

// Subscription returns the stored subscription, nil when none exists.
func (s *SubscriptionService) Subscription(ctx context.Context, userID string) *model.Subscription {
	return s.repo.LoadSubscription(ctx, userID)
}

// HasActive reports whether the user's subscription grants access now.
func (s *SubscriptionService) HasActive(ctx context.Context, userID string) bool {
	return s.repo.LoadSubscription(ctx, userID).ActiveAt(s.Now().UTC())
}

// Tier is the tier limits are read from: the subscription's tier while
// active, free otherwise.
func (s *SubscriptionService) Tier(ctx context.Context, userID string) model.Tier {
	return s.repo.LoadSubscription(ctx, userID).EffectiveTier(s.Now().UTC())
}

// ServiceDiscount is the flat percentage discount for the user's tier:
// 0 for free, 10 for community, 20 for ambassador.
func (s *SubscriptionService) ServiceDiscount(ctx context.Context, userID string) int {
	return model.LimitsFor(s.Tier(ctx, userID)).DiscountPercent
}

// Usage returns the user's stored usage counters.
func (s *SubscriptionService) Usage(ctx context.Context, userID string) model.Usage {
	u, ok := s.repo.LoadUsage(ctx, userID)
	if !ok {
		u = model.Usage{UserID: userID, LastResetDate: s.Now().UTC()}
	}
	return u
}

// CanUseFeature reports whether the feature's tier quota still has room.
// A stale LastResetDate (a different day for daily quotas, a different
// month for monthly ones) makes the used count read as zero, but the
// durable reset only happens on the next TrackFeatureUsage, never here.
func (s *SubscriptionService) CanUseFeature(ctx context.Context, userID string, feature model.Feature) (bool, error) {
	limits := model.LimitsFor(s.Tier(ctx, userID))
	usage := s.Usage(ctx, userID)
	now := s.Now().UTC()

	var limit, used int
	switch feature {
	case model.FeatureMatch:
		limit = limits.DailyMatches
		used = usage.DailyMatchesUsed
		if !sameDay(usage.LastResetDate, now) {
			used = 0
		}
	case model.FeatureMessage:
		limit = limits.MonthlyMessages
		used = usage.MonthlyMessagesUsed
		if !sameMonth(usage.LastResetDate, now) {
			used = 0
		}
	case model.FeaturePremiumEvent:
		limit = limits.MonthlyPremiumEvents
		used = usage.MonthlyPremiumEventsUsed
		if !sameMonth(usage.LastResetDate, now) {
			used = 0
		}
	case model.FeatureStreaming:
		limit = limits.MonthlyStreamingHours
		used = usage.MonthlyStreamingHoursUsed
		if !sameMonth(usage.LastResetDate, now) {
			used = 0
		}
	default:
		return false, model.ErrUnknownFeature
	}

	if limit == model.Unlimited {
		return true, nil
	}
	return used < limit, nil
}

// TrackFeatureUsage consumes one unit of the feature's quota. It
// revalidates via CanUseFeature; when allowed it durably resets any stale
// counters, increments the right one and persists. When not allowed it
// returns false without mutating state.
func (s *SubscriptionService) TrackFeatureUsage(ctx context.Context, userID string, feature model.Feature) (bool, error) {
	ok, err := s.CanUseFeature(ctx, userID, feature)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	usage := s.Usage(ctx, userID)
	now := s.Now().UTC()
	if !sameDay(usage.LastResetDate, now) {
		usage.DailyMatchesUsed = 0
	}
	if !sameMonth(usage.LastResetDate, now) {
		usage.MonthlyMessagesUsed = 0
		usage.MonthlyPremiumEventsUsed = 0
		usage.MonthlyStreamingHoursUsed = 0
	}
	usage.LastResetDate = now

	switch feature {
	case model.FeatureMatch:
		usage.DailyMatchesUsed++
	case model.FeatureMessage:
		usage.MonthlyMessagesUsed++
	case model.FeaturePremiumEvent:
		usage.MonthlyPremiumEventsUsed++
	case model.FeatureStreaming:
		usage.MonthlyStreamingHoursUsed++
	}

	persist("usage", s.repo.SaveUsage(ctx, userID, usage))
	return true, nil
}

// CreateSubscription opens a checkout session with the payment provider
// and, on success, records the pending subscription locally. The returned
// session id is used to redirect the member to hosted checkout; activation
// itself is webhook-driven on the provider side.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, userID, email, name string, tier model.Tier, plan model.Plan) (string, error) {
	sessionID, err := s.payments.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		UserID: userID,
		Email:  email,
		Name:   name,
		Tier:   tier,
		Plan:   plan,
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	now := s.Now().UTC()
	sub := s.repo.LoadSubscription(ctx, userID)
	if sub == nil {
		sub = &model.Subscription{
			ID:        uuid.New().String(),
			UserID:    userID,
			Currency:  "GBP",
			CreatedAt: now,
		}
	}
	sub.Tier = tier
	sub.Plan = plan
	sub.Status = model.StatusInactive // active only once the provider confirms
	sub.UpdatedAt = now
	persist("subscription", s.repo.SaveSubscription(ctx, userID, sub))
	return sessionID, nil
}

// CancelSubscription cancels with the provider and only then marks the
// local record cancelled. A provider failure leaves the record untouched.
func (s *SubscriptionService) CancelSubscription(ctx context.Context, userID string) error {
	sub := s.repo.LoadSubscription(ctx, userID)
	if sub == nil {
		return model.ErrNoSubscription
	}
	if err := s.payments.CancelSubscription(ctx, sub.ProviderSubscriptionID); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	sub.Status = model.StatusCancelled
	sub.UpdatedAt = s.Now().UTC()
	persist("subscription", s.repo.SaveSubscription(ctx, userID, sub))
	return nil
}

// UpgradeSubscription moves the subscription to a new tier with the
// provider and only then updates the local record.
func (s *SubscriptionService) UpgradeSubscription(ctx context.Context, userID string, tier model.Tier) error {
	sub := s.repo.LoadSubscription(ctx, userID)
	if sub == nil {
		return model.ErrNoSubscription
	}
	if err := s.payments.UpgradeSubscription(ctx, sub.ProviderSubscriptionID, tier); err != nil {
		return fmt.Errorf("upgrade subscription: %w", err)
	}
	sub.Tier = tier
	sub.UpdatedAt = s.Now().UTC()
	persist("subscription", s.repo.SaveSubscription(ctx, userID, sub))
	return nil
}

// VerifyStudent checks the email with the verification collaborator and,
// when valid, flags the subscription record.
func (s *SubscriptionService) VerifyStudent(ctx context.Context, userID, email, university string) (bool, error) {
	valid, err := s.verifier.Verify(ctx, email, university)
	if err != nil {
		return false, fmt.Errorf("verify student: %w", err)
	}
	if valid {
		if sub := s.repo.LoadSubscription(ctx, userID); sub != nil {
			sub.StudentVerified = true
			sub.UpdatedAt = s.Now().UTC()
			persist("subscription", s.repo.SaveSubscription(ctx, userID, sub))
		}
	}
	return valid, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}
