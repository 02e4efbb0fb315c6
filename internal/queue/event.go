// Package queue defines the notification delivery pipeline: the message
// payloads exchanged over the broker, a publisher used by the notification
// service, and the background consumer that records deliveries.
package queue

// DeliveryEvent is published when a notification must be delivered outside
// the in-app list: immediately for high and urgent priorities, or when a
// scheduled notification comes due. It carries the already-localized texts
// so consumers never need to query the stores.
type DeliveryEvent struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Channel        string `json:"channel"`
	Priority       string `json:"priority"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Language       string `json:"language"`
	SentAt         string `json:"sent_at"`
}
