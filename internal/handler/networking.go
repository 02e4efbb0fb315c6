package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/service"
)

// NetworkingHandler exposes the social graph endpoints.
type NetworkingHandler struct {
	Network *service.NetworkingService
}

func NewNetworkingHandler(network *service.NetworkingService) *NetworkingHandler {
	return &NetworkingHandler{Network: network}
}

// List returns the user's connections. ?q= searches, ?sort= orders
// (recent, events, alphabetical).
func (h *NetworkingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)
	if q := c.QueryParam("q"); q != "" {
		return c.JSON(http.StatusOK, echo.Map{
			"connections": h.Network.SearchConnections(ctx, uid, q),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"connections": h.Network.Connections(ctx, uid, c.QueryParam("sort")),
	})
}

// Stats returns the aggregate counters and achievements.
func (h *NetworkingHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Network.Stats(c.Request().Context(), userID(c)))
}

// ConversationStarters returns the bilingual prompts, optionally filtered
// by ?category=.
func (h *NetworkingHandler) ConversationStarters(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"starters": h.Network.ConversationStarters(c.QueryParam("category")),
	})
}

// CheckIn records an event check-in.
func (h *NetworkingHandler) CheckIn(c echo.Context) error {
	h.Network.CheckInToEvent(c.Request().Context(), userID(c), c.Param("id"))
	return c.NoContent(http.StatusAccepted)
}

// MarkAttended records attendance of an event.
func (h *NetworkingHandler) MarkAttended(c echo.Context) error {
	h.Network.MarkEventAttended(c.Request().Context(), userID(c), c.Param("id"))
	return c.NoContent(http.StatusAccepted)
}
