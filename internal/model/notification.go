package model

import "time"

// NotificationType is the feature area a notification originates from.
type NotificationType string

const (
	TypeMatch        NotificationType = "match"
	TypeMessage      NotificationType = "message"
	TypeEventInvite  NotificationType = "event_invite"
	TypeBooking      NotificationType = "booking"
	TypeSubscription NotificationType = "subscription"
	TypeSystem       NotificationType = "system"
)

// NotificationCategory groups notifications for preference filtering.
type NotificationCategory string

const (
	CatEvents       NotificationCategory = "events"
	CatNetworking   NotificationCategory = "networking"
	CatServices     NotificationCategory = "services"
	CatTransport    NotificationCategory = "transport"
	CatHousing      NotificationCategory = "housing"
	CatJobs         NotificationCategory = "jobs"
	CatCommunity    NotificationCategory = "community"
	CatSubscription NotificationCategory = "subscription"
	CatSafety       NotificationCategory = "safety"
	CatGeneral      NotificationCategory = "general"
)

// AllCategories lists every preference category in display order.
var AllCategories = []NotificationCategory{
	CatEvents, CatNetworking, CatServices, CatTransport, CatHousing,
	CatJobs, CatCommunity, CatSubscription, CatSafety, CatGeneral,
}

// Priority orders notifications for delivery urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities lists every priority level.
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Immediate reports whether the priority warrants an instant delivery on
// top of the in-app list (the toast path).
func (p Priority) Immediate() bool { return p == PriorityHigh || p == PriorityUrgent }

// CallToAction is an optional action button attached to a notification.
type CallToAction struct {
	Label Bilingual `json:"label"`
	URL   string    `json:"url"`
}

// Notification is a single entry in a member's notification list.
type Notification struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Category  NotificationCategory `json:"category"`
	Title     Bilingual            `json:"title"`
	Message   Bilingual            `json:"message"`
	UserID    string               `json:"user_id"`
	Read      bool                 `json:"read"`
	Priority  Priority             `json:"priority"`
	Data      map[string]string    `json:"data,omitempty"`
	CTA       *CallToAction        `json:"cta,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
}

// Expired reports whether the notification should be swept.
func (n Notification) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}

// NotificationTemplate is a canned bilingual notification with {{variable}}
// placeholders. Variables lists the placeholder names the template declares;
// placeholders without a matching value stay literal in the rendered text.
type NotificationTemplate struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Category  NotificationCategory `json:"category"`
	Priority  Priority             `json:"priority"`
	Title     Bilingual            `json:"title"`
	Message   Bilingual            `json:"message"`
	Variables []string             `json:"variables"`
}

// Channel is a delivery channel for notifications.
type Channel string

const (
	ChannelInApp    Channel = "in_app"
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelPush     Channel = "push"
)

// AllChannels lists the five supported delivery channels.
var AllChannels = []Channel{ChannelInApp, ChannelEmail, ChannelWhatsApp, ChannelSMS, ChannelPush}

// Frequency controls how often a channel delivers.
type Frequency string

const (
	FreqImmediate Frequency = "immediate"
	FreqHourly    Frequency = "hourly"
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
)

// ChannelPreference is one channel's settings: an enabled flag, a
// per-category boolean matrix, a per-priority boolean matrix and a delivery
// frequency.
type ChannelPreference struct {
	Enabled    bool                          `json:"enabled"`
	Categories map[NotificationCategory]bool `json:"categories"`
	Priorities map[Priority]bool             `json:"priorities"`
	Frequency  Frequency                     `json:"frequency"`
}

// Preferences is the per-user notification preference matrix. Singleton per
// user.
type Preferences struct {
	UserID          string                        `json:"user_id"`
	Channels        map[Channel]ChannelPreference `json:"channels"`
	QuietHoursStart string                        `json:"quiet_hours_start,omitempty"` // "22:00"
	QuietHoursEnd   string                        `json:"quiet_hours_end,omitempty"`   // "08:00"
	Language        string                        `json:"language"`
	Interests       []string                      `json:"interests,omitempty"`
}

// DefaultPreferences returns the matrix a user starts with: every channel
// enabled for every category and priority, immediate frequency, English.
func DefaultPreferences(userID string) Preferences {
	channels := make(map[Channel]ChannelPreference, len(AllChannels))
	for _, ch := range AllChannels {
		cats := make(map[NotificationCategory]bool, len(AllCategories))
		for _, c := range AllCategories {
			cats[c] = true
		}
		prios := make(map[Priority]bool, len(AllPriorities))
		for _, p := range AllPriorities {
			prios[p] = true
		}
		channels[ch] = ChannelPreference{
			Enabled:    true,
			Categories: cats,
			Priorities: prios,
			Frequency:  FreqImmediate,
		}
	}
	return Preferences{
		UserID:   userID,
		Channels: channels,
		Language: LanguageEN,
	}
}

// Insights summarizes the live notification list. Only measured values are
// reported: read rate and per-category counts. Response rate, channel
// effectiveness and optimal send times would need delivery feedback we do
// not collect, so they are not exposed.
type Insights struct {
	Total      int                          `json:"total"`
	Unread     int                          `json:"unread"`
	ReadRate   float64                      `json:"read_rate"` // 0..1
	ByCategory map[NotificationCategory]int `json:"by_category"`
}
