package model

import "time"

// SavedItem is a bookmarked entity: an event, a business, a post or a
// group. Uniqueness is enforced on the (Category, Title) pair; two saved
// items may share a title as long as they are of different kinds.
type SavedItem struct {
	ID          string        `json:"id"`
	Category    ItemCategory  `json:"category"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Event       *EventDetails `json:"event,omitempty"`
	SavedAt     time.Time     `json:"saved_at"`
}
