package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/repository"
)

// IntegrationService is the cross-feature glue: it tracks the user journey,
// keeps the ecosystem analytics counters and derives the ranked
// recommendation set from the state of the other stores.
type IntegrationService struct {
	repo    *repository.IntegrationRepo
	cart    *CartService
	network *NetworkingService
	subs    *SubscriptionService

	// Now is the clock used for timestamps. Overridable in tests.
	Now func() time.Time
}

// NewIntegrationService constructs an IntegrationService over the upstream
// services it reads from.
func NewIntegrationService(repo *repository.IntegrationRepo, cart *CartService, network *NetworkingService, subs *SubscriptionService) *IntegrationService {
	return &IntegrationService{
		repo:    repo,
		cart:    cart,
		network: network,
		subs:    subs,
		Now:     time.Now,
	}
}

// validSteps is the journey step enum; anything else is rejected.
var validSteps = map[model.JourneyStep]bool{
	model.StepTransportBooked: true,
	model.StepBookingComplete: true,
	model.StepEventBrowsed:    true,
	model.StepEventAttended:   true,
	model.StepConnectionMade:  true,
	model.StepMessageSent:     true,
	model.StepServiceViewed:   true,
}

// stepEffects is the dispatch table applied to the analytics counters when
// a step is recorded.
var stepEffects = map[model.JourneyStep]func(*model.Analytics){
	model.StepBookingComplete: func(a *model.Analytics) {
		a.CrossPlatformConversions++
	},
	model.StepEventAttended: func(a *model.Analytics) {
		a.CommunityParticipation++
	},
}

// InitializeJourney starts a journey from the given surface, with the
// direction derived from the start-point table.
func (s *IntegrationService) InitializeJourney(ctx context.Context, userID string, start model.JourneyStart) *model.UserJourney {
	now := s.Now().UTC()
	j := &model.UserJourney{
		UserID:    userID,
		Start:     start,
		Direction: model.DirectionFor(start),
		StartedAt: now,
		UpdatedAt: now,
	}
	persist("journey", s.repo.SaveJourney(ctx, userID, j))
	return j
}

// RecordStep appends a step to the journey, bumps the engagement score by
// a flat 0.5 and applies the step's analytics effects through the dispatch
// table. The recommendation set is refreshed afterwards.
func (s *IntegrationService) RecordStep(ctx context.Context, userID string, step model.JourneyStep) (*model.UserJourney, error) {
	if !validSteps[step] {
		return nil, model.ErrUnknownStep
	}
	j := s.repo.LoadJourney(ctx, userID)
	if j == nil {
		return nil, model.ErrNoJourney
	}

	now := s.Now().UTC()
	j.Steps = append(j.Steps, model.JourneyStepRecord{Step: step, At: now})
	j.EngagementScore += 0.5
	j.UpdatedAt = now
	persist("journey", s.repo.SaveJourney(ctx, userID, j))

	a := s.repo.LoadAnalytics(ctx, userID)
	if a.SourceUsage == nil {
		a.SourceUsage = make(map[string]int)
	}
	a.SourceUsage[string(step)]++
	a.EngagementScore = j.EngagementScore
	if effect, ok := stepEffects[step]; ok {
		effect(&a)
	}
	persist("analytics", s.repo.SaveAnalytics(ctx, userID, a))

	s.Refresh(ctx, userID)
	return j, nil
}

// Journey returns the stored journey, nil when none was initialized.
func (s *IntegrationService) Journey(ctx context.Context, userID string) *model.UserJourney {
	return s.repo.LoadJourney(ctx, userID)
}

// RecordRevenue adds a completed purchase to the analytics counters.
func (s *IntegrationService) RecordRevenue(ctx context.Context, userID string, amountCents int64) {
	a := s.repo.LoadAnalytics(ctx, userID)
	a.RevenueCents += amountCents
	persist("analytics", s.repo.SaveAnalytics(ctx, userID, a))
}

// ruleInput is the upstream state a recommendation rule sees.
type ruleInput struct {
	cartCount     int
	connections   int
	engagement    float64
	hasActiveSub  bool
	completedTrip bool
}

// rule is one entry of the ordered recommendation rule list.
type rule struct {
	trigger model.RecommendationTrigger
	applies func(ruleInput) bool
	build   func(now time.Time) model.Recommendation
}

// rules is evaluated in order; each firing rule contributes one
// recommendation. Relevance scores are hand-assigned, not learned.
var rules = []rule{
	{
		trigger: model.TriggerTransportCompletion,
		applies: func(in ruleInput) bool { return in.completedTrip },
		build: func(now time.Time) model.Recommendation {
			return model.Recommendation{
				ID:   uuid.New().String(),
				Type: "community_event",
				Title: model.Bilingual{
					EN: "Meet the community at your destination",
					PT: "Conhece a comunidade no teu destino",
				},
				Description: model.Bilingual{
					EN: "You just completed a trip. There are Portuguese events near where you went.",
					PT: "Acabaste uma viagem. Há eventos portugueses perto de onde foste.",
				},
				Relevance: 9,
				Signals:   []string{string(model.TriggerTransportCompletion)},
				CTA:       model.Bilingual{EN: "Browse events", PT: "Ver eventos"},
				Category:  "events",
				CreatedAt: now,
			}
		},
	},
	{
		trigger: model.TriggerHighNetworkingActivity,
		applies: func(in ruleInput) bool { return in.connections >= 3 },
		build: func(now time.Time) model.Recommendation {
			return model.Recommendation{
				ID:   uuid.New().String(),
				Type: "group_activity",
				Title: model.Bilingual{
					EN: "Organize a group outing",
					PT: "Organiza uma saída de grupo",
				},
				Description: model.Bilingual{
					EN: "You are well connected. Bring your connections together at a community event.",
					PT: "Tens uma boa rede. Junta as tuas ligações num evento da comunidade.",
				},
				Relevance: 8.5,
				Signals:   []string{string(model.TriggerHighNetworkingActivity)},
				CTA:       model.Bilingual{EN: "Plan an outing", PT: "Planear uma saída"},
				Category:  "networking",
				CreatedAt: now,
			}
		},
	},
	{
		trigger: model.TriggerMembershipOpportunity,
		applies: func(in ruleInput) bool { return in.engagement > 5 && !in.hasActiveSub },
		build: func(now time.Time) model.Recommendation {
			return model.Recommendation{
				ID:   uuid.New().String(),
				Type: "membership",
				Title: model.Bilingual{
					EN: "Get more from your community",
					PT: "Aproveita mais a tua comunidade",
				},
				Description: model.Bilingual{
					EN: "You are active here. A Community membership unlocks unlimited matches and messages.",
					PT: "És ativo por aqui. A subscrição Community desbloqueia matches e mensagens ilimitados.",
				},
				Relevance: 9.5,
				Signals:   []string{string(model.TriggerMembershipOpportunity)},
				CTA:       model.Bilingual{EN: "See membership plans", PT: "Ver planos de subscrição"},
				Urgency:   "medium",
				Category:  "subscription",
				CreatedAt: now,
			}
		},
	},
}

// Recommendations evaluates a single trigger's rule against the current
// upstream state and returns its recommendations (empty when the condition
// does not hold).
func (s *IntegrationService) Recommendations(ctx context.Context, userID string, trigger model.RecommendationTrigger) ([]model.Recommendation, error) {
	in := s.ruleInput(ctx, userID)
	for _, r := range rules {
		if r.trigger != trigger {
			continue
		}
		if !r.applies(in) {
			return nil, nil
		}
		return []model.Recommendation{r.build(s.Now().UTC())}, nil
	}
	return nil, model.ErrUnknownTrigger
}

// Refresh re-derives the recommendation set from every rule, merges with
// nothing carried over, dedupes by (type, title), keeps at most 10 sorted
// by relevance descending, and persists the result.
func (s *IntegrationService) Refresh(ctx context.Context, userID string) []model.Recommendation {
	in := s.ruleInput(ctx, userID)
	now := s.Now().UTC()

	var recs []model.Recommendation
	seen := make(map[string]bool)
	for _, r := range rules {
		if !r.applies(in) {
			continue
		}
		rec := r.build(now)
		key := rec.Type + "\x00" + rec.Title.EN
		if seen[key] {
			continue
		}
		seen[key] = true
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Relevance > recs[j].Relevance })
	if len(recs) > 10 {
		recs = recs[:10]
	}
	persist("recommendations", s.repo.SaveRecommendations(ctx, userID, recs))
	return recs
}

func (s *IntegrationService) ruleInput(ctx context.Context, userID string) ruleInput {
	engagement := 0.0
	completedTrip := false
	if j := s.repo.LoadJourney(ctx, userID); j != nil {
		engagement = j.EngagementScore
		for _, rec := range j.Steps {
			if rec.Step == model.StepTransportBooked || rec.Step == model.StepBookingComplete {
				completedTrip = true
				break
			}
		}
	}
	return ruleInput{
		cartCount:     s.cart.Count(ctx, userID),
		connections:   len(s.network.Connections(ctx, userID, SortRecent)),
		engagement:    engagement,
		hasActiveSub:  s.subs.HasActive(ctx, userID),
		completedTrip: completedTrip,
	}
}

// Analytics returns the stored ecosystem counters.
func (s *IntegrationService) Analytics(ctx context.Context, userID string) model.Analytics {
	return s.repo.LoadAnalytics(ctx, userID)
}

// EcosystemValue is the dashboard value derived from the analytics
// counters.
func (s *IntegrationService) EcosystemValue(ctx context.Context, userID string) float64 {
	return s.repo.LoadAnalytics(ctx, userID).EcosystemValue()
}

// UserInsights returns the bilingual insight strings whose thresholds the
// user currently meets.
func (s *IntegrationService) UserInsights(ctx context.Context, userID string) []model.Bilingual {
	in := s.ruleInput(ctx, userID)
	var out []model.Bilingual
	if in.connections >= 3 {
		out = append(out, model.Bilingual{
			EN: "You are well connected in the community.",
			PT: "Estás bem ligado na comunidade.",
		})
	}
	if in.engagement > 7 {
		out = append(out, model.Bilingual{
			EN: "Your engagement is among the highest here.",
			PT: "O teu envolvimento está entre os mais altos por aqui.",
		})
	}
	if in.hasActiveSub {
		out = append(out, model.Bilingual{
			EN: "Your membership is active. Enjoy your benefits.",
			PT: "A tua subscrição está ativa. Aproveita as vantagens.",
		})
	}
	if in.cartCount > 0 {
		out = append(out, model.Bilingual{
			EN: "You have bookings waiting in your cart.",
			PT: "Tens reservas à espera no teu carrinho.",
		})
	}
	return out
}
