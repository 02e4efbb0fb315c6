package service

import "github.com/lusotown/community-platform/internal/model"

// notificationTemplates is the canned bilingual template table keyed by
// template id.
var notificationTemplates = map[string]model.NotificationTemplate{
	"event_reminder": {
		ID:       "event_reminder",
		Type:     model.TypeEventInvite,
		Category: model.CatEvents,
		Priority: model.PriorityHigh,
		Title: model.Bilingual{
			EN: "Reminder: {{eventName}}",
			PT: "Lembrete: {{eventName}}",
		},
		Message: model.Bilingual{
			EN: "{{eventName}} starts at {{eventTime}}. See you there!",
			PT: "{{eventName}} começa às {{eventTime}}. Até já!",
		},
		Variables: []string{"eventName", "eventTime"},
	},
	"new_match": {
		ID:       "new_match",
		Type:     model.TypeMatch,
		Category: model.CatNetworking,
		Priority: model.PriorityMedium,
		Title: model.Bilingual{
			EN: "New connection suggestion",
			PT: "Nova sugestão de ligação",
		},
		Message: model.Bilingual{
			EN: "{{matchName}} also speaks Portuguese and lives near you.",
			PT: "{{matchName}} também fala português e mora perto de ti.",
		},
		Variables: []string{"matchName"},
	},
	"booking_confirmed": {
		ID:       "booking_confirmed",
		Type:     model.TypeBooking,
		Category: model.CatServices,
		Priority: model.PriorityHigh,
		Title: model.Bilingual{
			EN: "Booking confirmed",
			PT: "Reserva confirmada",
		},
		Message: model.Bilingual{
			EN: "Your booking for {{serviceName}} on {{date}} is confirmed.",
			PT: "A tua reserva de {{serviceName}} para {{date}} está confirmada.",
		},
		Variables: []string{"serviceName", "date"},
	},
	"subscription_renewal": {
		ID:       "subscription_renewal",
		Type:     model.TypeSubscription,
		Category: model.CatSubscription,
		Priority: model.PriorityMedium,
		Title: model.Bilingual{
			EN: "Your membership renews soon",
			PT: "A tua subscrição renova em breve",
		},
		Message: model.Bilingual{
			EN: "Your {{tier}} membership renews on {{renewalDate}}.",
			PT: "A tua subscrição {{tier}} renova a {{renewalDate}}.",
		},
		Variables: []string{"tier", "renewalDate"},
	},
	"safety_alert": {
		ID:       "safety_alert",
		Type:     model.TypeSystem,
		Category: model.CatSafety,
		Priority: model.PriorityUrgent,
		Title: model.Bilingual{
			EN: "Safety alert: {{area}}",
			PT: "Alerta de segurança: {{area}}",
		},
		Message: model.Bilingual{
			EN: "{{details}}",
			PT: "{{details}}",
		},
		Variables: []string{"area", "details"},
	},
}
