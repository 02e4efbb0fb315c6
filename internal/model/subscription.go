package model

import "time"

// Tier is the membership level gating usage limits and discounts.
type Tier string

const (
	TierFree       Tier = "free"
	TierCommunity  Tier = "community"
	TierAmbassador Tier = "ambassador"
)

// SubscriptionStatus enumerates the provider-driven subscription states.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusInactive  SubscriptionStatus = "inactive"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusTrialing  SubscriptionStatus = "trialing"
)

// Plan is the billing period of a paid subscription.
type Plan string

const (
	PlanMonthly Plan = "monthly"
	PlanYearly  Plan = "yearly"
)

// Feature names a usage-limited capability.
type Feature string

const (
	FeatureMatch        Feature = "match"
	FeatureMessage      Feature = "message"
	FeaturePremiumEvent Feature = "premium_event"
	FeatureStreaming    Feature = "streaming"
)

// Unlimited is the single representation of "no limit" in a tier's limit
// table. The source system also carried an unlimited-access boolean that no
// tier ever set; it is not reproduced here.
const Unlimited = -1

// TierLimits is the static per-tier quota and discount table.
type TierLimits struct {
	DailyMatches          int `json:"daily_matches"`
	MonthlyMessages       int `json:"monthly_messages"`
	MonthlyPremiumEvents  int `json:"monthly_premium_events"`
	MonthlyStreamingHours int `json:"monthly_streaming_hours"`
	DiscountPercent       int `json:"discount_percent"`
}

var tierLimits = map[Tier]TierLimits{
	TierFree: {
		DailyMatches:          2,
		MonthlyMessages:       3,
		MonthlyPremiumEvents:  0,
		MonthlyStreamingHours: 0,
		DiscountPercent:       0,
	},
	TierCommunity: {
		DailyMatches:          Unlimited,
		MonthlyMessages:       Unlimited,
		MonthlyPremiumEvents:  Unlimited,
		MonthlyStreamingHours: 0,
		DiscountPercent:       10,
	},
	TierAmbassador: {
		DailyMatches:          Unlimited,
		MonthlyMessages:       Unlimited,
		MonthlyPremiumEvents:  Unlimited,
		MonthlyStreamingHours: 5,
		DiscountPercent:       20,
	},
}

// LimitsFor returns the quota table for a tier. Unknown tiers get the free
// tier's limits.
func LimitsFor(t Tier) TierLimits {
	if l, ok := tierLimits[t]; ok {
		return l
	}
	return tierLimits[TierFree]
}

// Subscription mirrors the member's subscription as last confirmed by the
// payment provider. Local state is only updated after a successful provider
// round trip.
type Subscription struct {
	ID                     string             `json:"id"`
	UserID                 string             `json:"user_id"`
	ProviderCustomerID     string             `json:"provider_customer_id,omitempty"`
	ProviderSubscriptionID string             `json:"provider_subscription_id,omitempty"`
	Status                 SubscriptionStatus `json:"status"`
	Plan                   Plan               `json:"plan"`
	Tier                   Tier               `json:"tier"`
	CurrentPeriodStart     time.Time          `json:"current_period_start"`
	CurrentPeriodEnd       time.Time          `json:"current_period_end"`
	TrialEnd               *time.Time         `json:"trial_end,omitempty"`
	PriceCents             int64              `json:"price_cents"`
	Currency               string             `json:"currency"`
	StudentVerified        bool               `json:"student_verified"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// ActiveAt reports whether the subscription grants access at the given
// instant: status must be active and the paid period must not have ended.
// An "active" status alone is not enough once CurrentPeriodEnd has passed.
func (s *Subscription) ActiveAt(now time.Time) bool {
	if s == nil {
		return false
	}
	return s.Status == StatusActive && now.Before(s.CurrentPeriodEnd)
}

// EffectiveTier is the tier limits should be read from: the subscription's
// tier while it is active, otherwise free.
func (s *Subscription) EffectiveTier(now time.Time) Tier {
	if s.ActiveAt(now) {
		return s.Tier
	}
	return TierFree
}

// Usage tracks per-user feature counters against the tier limits.
// Daily counters cover the calendar day of LastResetDate; monthly counters
// cover its calendar month. Counters are only durably reset when usage is
// next tracked, not when limits are merely read.
type Usage struct {
	UserID                    string    `json:"user_id"`
	DailyMatchesUsed          int       `json:"daily_matches_used"`
	MonthlyMessagesUsed       int       `json:"monthly_messages_used"`
	MonthlyPremiumEventsUsed  int       `json:"monthly_premium_events_used"`
	MonthlyStreamingHoursUsed int       `json:"monthly_streaming_hours_used"`
	LastResetDate             time.Time `json:"last_reset_date"`
}
