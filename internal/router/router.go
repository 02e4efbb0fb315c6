// Package router wires the HTTP surface. All member state lives under /v1
// behind the identity middleware; the health check stays outside it.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/handler"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Cart          *handler.CartHandler
	Saved         *handler.SavedHandler
	Networking    *handler.NetworkingHandler
	Subscription  *handler.SubscriptionHandler
	Notifications *handler.NotificationHandler
	Integration   *handler.IntegrationHandler
	Preferences   *handler.PreferencesHandler
}

// RegisterRoutes registers the health check on the bare Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts every member-state endpoint on the given group. The
// group is expected to carry the identity middleware (and, when Redis is
// up, rate limiting and response caching).
func RegisterAPI(g *echo.Group, h Handlers) {
	// cart and reservations
	g.GET("/cart", h.Cart.GetCart)
	g.POST("/cart/items", h.Cart.AddItem)
	g.PATCH("/cart/items/:id", h.Cart.UpdateItem)
	g.DELETE("/cart/items/:id", h.Cart.RemoveItem)
	g.DELETE("/cart", h.Cart.Clear)
	g.POST("/cart/items/:id/reservation", h.Cart.CreateReservation)
	g.GET("/reservations", h.Cart.ListReservations)

	// saved items
	g.GET("/saved", h.Saved.List)
	g.POST("/saved", h.Saved.Add)
	g.POST("/saved/toggle", h.Saved.Toggle)
	g.DELETE("/saved/:id", h.Saved.Remove)
	g.GET("/saved/contains", h.Saved.Contains)

	// networking
	g.GET("/connections", h.Networking.List)
	g.GET("/network/stats", h.Networking.Stats)
	g.GET("/conversation-starters", h.Networking.ConversationStarters)
	g.POST("/events/:id/checkin", h.Networking.CheckIn)
	g.POST("/events/:id/attended", h.Networking.MarkAttended)

	// subscription and quotas
	g.GET("/subscription", h.Subscription.Get)
	g.POST("/subscription/checkout", h.Subscription.Checkout)
	g.POST("/subscription/cancel", h.Subscription.Cancel)
	g.POST("/subscription/upgrade", h.Subscription.Upgrade)
	g.GET("/features/:feature/allowance", h.Subscription.Allowance)
	g.POST("/features/:feature/usage", h.Subscription.TrackUsage)
	g.POST("/student-verification", h.Subscription.VerifyStudent)

	// notifications and preferences
	g.GET("/notifications", h.Notifications.List)
	g.POST("/notifications", h.Notifications.Add)
	g.POST("/notifications/personalized", h.Notifications.SendPersonalized)
	g.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	g.POST("/notifications/sweep", h.Notifications.Sweep)
	g.GET("/notifications/insights", h.Notifications.Insights)
	g.POST("/notifications/:id/read", h.Notifications.MarkRead)
	g.DELETE("/notifications/:id", h.Notifications.Delete)
	g.GET("/notification-preferences", h.Notifications.GetPreferences)
	g.PATCH("/notification-preferences", h.Notifications.PatchPreferences)
	g.PATCH("/notification-preferences/:channel", h.Notifications.PatchChannel)

	// journey, analytics, recommendations
	g.POST("/journey", h.Integration.StartJourney)
	g.GET("/journey", h.Integration.GetJourney)
	g.POST("/journey/steps", h.Integration.RecordStep)
	g.GET("/recommendations", h.Integration.Recommendations)
	g.GET("/analytics", h.Integration.Analytics)
	g.POST("/analytics/revenue", h.Integration.RecordRevenue)
	g.GET("/insights", h.Integration.UserInsights)

	// display language
	g.GET("/preferences/language", h.Preferences.GetLanguage)
	g.PUT("/preferences/language", h.Preferences.SetLanguage)
}
