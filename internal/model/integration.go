package model

import "time"

// JourneyStart names the surface on which a user journey began. The source
// system classified journeys by substring-matching the start point string;
// here the start point is typed and the direction comes from a table.
type JourneyStart string

const (
	StartTransport JourneyStart = "transport"
	StartServices  JourneyStart = "services"
	StartEvents    JourneyStart = "events"
	StartCommunity JourneyStart = "community"
)

// JourneyDirection classifies which way a member moves through the
// platform's offering.
type JourneyDirection string

const (
	ServiceToCommunity JourneyDirection = "service_to_community"
	CommunityToService JourneyDirection = "community_to_service"
)

// DirectionFor maps a start surface to a journey direction.
func DirectionFor(start JourneyStart) JourneyDirection {
	switch start {
	case StartTransport, StartServices:
		return ServiceToCommunity
	default:
		return CommunityToService
	}
}

// JourneyStep is a typed step in a user journey. Steps are dispatched
// through an explicit table; values outside it are rejected.
type JourneyStep string

const (
	StepTransportBooked JourneyStep = "transport_booked"
	StepBookingComplete JourneyStep = "booking_complete"
	StepEventBrowsed    JourneyStep = "event_browsed"
	StepEventAttended   JourneyStep = "event_attended"
	StepConnectionMade  JourneyStep = "connection_made"
	StepMessageSent     JourneyStep = "message_sent"
	StepServiceViewed   JourneyStep = "service_viewed"
)

// JourneyStepRecord is one recorded step with its timestamp.
type JourneyStepRecord struct {
	Step JourneyStep `json:"step"`
	At   time.Time   `json:"at"`
}

// UserJourney is the per-user sequence of recorded steps plus the running
// engagement score derived from it.
type UserJourney struct {
	UserID          string              `json:"user_id"`
	Start           JourneyStart        `json:"start"`
	Direction       JourneyDirection    `json:"direction"`
	Steps           []JourneyStepRecord `json:"steps"`
	EngagementScore float64             `json:"engagement_score"`
	StartedAt       time.Time           `json:"started_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// RecommendationTrigger names a condition that activates a recommendation
// rule.
type RecommendationTrigger string

const (
	TriggerTransportCompletion    RecommendationTrigger = "transport_completion"
	TriggerHighNetworkingActivity RecommendationTrigger = "high_networking_activity"
	TriggerMembershipOpportunity  RecommendationTrigger = "membership_opportunity"
)

// Recommendation is one ranked cross-feature suggestion. Ephemeral:
// regenerated on every upstream state change and deduplicated by
// (Type, Title).
type Recommendation struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       Bilingual `json:"title"`
	Description Bilingual `json:"description"`
	Relevance   float64   `json:"relevance"`
	Signals     []string  `json:"signals"`
	CTA         Bilingual `json:"cta"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
	Urgency     string    `json:"urgency,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Analytics aggregates the continuously recomputed ecosystem counters for
// one user.
type Analytics struct {
	UserID                   string         `json:"user_id"`
	EngagementScore          float64        `json:"engagement_score"`
	SourceUsage              map[string]int `json:"source_usage,omitempty"`
	CommunityParticipation   int            `json:"community_participation"`
	RevenueCents             int64          `json:"revenue_cents"`
	CrossPlatformConversions int            `json:"cross_platform_conversions"`
}

// EcosystemValue is the linear combination of the analytics counters used
// on the member dashboard: revenue + conversions*25 + engagement*10, with
// revenue taken in whole pounds.
func (a Analytics) EcosystemValue() float64 {
	return float64(a.RevenueCents)/100 + float64(a.CrossPlatformConversions)*25 + a.EngagementScore*10
}
