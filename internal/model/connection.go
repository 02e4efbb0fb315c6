package model

import "time"

// ConnectionOrigin describes how two members became connected.
type ConnectionOrigin string

const (
	OriginEventBased    ConnectionOrigin = "event_based"
	OriginMutualMatch   ConnectionOrigin = "mutual_match"
	OriginGroupMember   ConnectionOrigin = "group_member"
	OriginNeighbourhood ConnectionOrigin = "neighbourhood"
)

// ConnectionProfile is the denormalized snapshot of the counterparty kept
// on each connection so listings never need a second lookup.
type ConnectionProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Location  string `json:"location,omitempty"`
	Headline  string `json:"headline,omitempty"`
}

// Connection links the owning user to another member of the community.
//
// Fields:
//  ID                – identifier of the connection record.
//  UserID            – owning user.
//  ConnectedUserID   – the counterparty.
//  Profile           – snapshot of the counterparty's profile.
//  Origin            – how the connection came about.
//  FirstMetEvent     – title of the event where the two first met, if any.
//  SharedEventsCount – number of events both attended.
//  Strength          – computed connection strength score.
//  LastInteractionAt – most recent interaction between the two.
//  Privacy           – visibility level chosen by the owner.
//  CreatedAt         – when the connection was formed.
type Connection struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	ConnectedUserID   string            `json:"connected_user_id"`
	Profile           ConnectionProfile `json:"profile"`
	Origin            ConnectionOrigin  `json:"origin"`
	FirstMetEvent     string            `json:"first_met_event,omitempty"`
	SharedEventsCount int               `json:"shared_events_count"`
	Strength          float64           `json:"strength"`
	LastInteractionAt time.Time         `json:"last_interaction_at"`
	Privacy           string            `json:"privacy"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Achievement is a badge earned through community activity.
type Achievement struct {
	ID       string    `json:"id"`
	Name     Bilingual `json:"name"`
	Icon     string    `json:"icon,omitempty"`
	EarnedAt time.Time `json:"earned_at"`
}

// NetworkStats aggregates a member's networking activity for display.
type NetworkStats struct {
	TotalConnections  int           `json:"total_connections"`
	EventsAttended    int           `json:"events_attended"`
	MessagesExchanged int           `json:"messages_exchanged"`
	Achievements      []Achievement `json:"achievements"`
}

// ConversationStarter is a canned bilingual prompt members can use to open
// a chat with a new connection.
type ConversationStarter struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Prompt   Bilingual `json:"prompt"`
}
