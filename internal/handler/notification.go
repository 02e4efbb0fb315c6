package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/service"
)

// NotificationHandler exposes the notification list, preference matrix
// and template sends.
type NotificationHandler struct {
	Notifications *service.NotificationService
}

func NewNotificationHandler(n *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: n}
}

type addNotificationReq struct {
	Type      model.NotificationType     `json:"type"`
	Category  model.NotificationCategory `json:"category"`
	Priority  model.Priority             `json:"priority"`
	Title     model.Bilingual            `json:"title"`
	Message   model.Bilingual            `json:"message"`
	Data      map[string]string          `json:"data,omitempty"`
	CTA       *model.CallToAction        `json:"cta,omitempty"`
	ExpiresAt *time.Time                 `json:"expires_at,omitempty"`
	// DelaySeconds defers the add; the timer is in-process only.
	DelaySeconds int `json:"delay_seconds,omitempty"`
}

type personalizedReq struct {
	TemplateID string            `json:"template_id"`
	Variables  map[string]string `json:"variables"`
}

// List returns notifications filtered by the optional ?category=, ?type=,
// ?unread=true and ?q= parameters. Filters combine left to right the way
// the query is usually built: search wins, then unread, then the enums.
func (h *NotificationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)

	var list []model.Notification
	switch {
	case c.QueryParam("q") != "":
		list = h.Notifications.Search(ctx, uid, c.QueryParam("q"))
	case c.QueryParam("unread") == "true":
		list = h.Notifications.Unread(ctx, uid)
	case c.QueryParam("category") != "":
		list = h.Notifications.ByCategory(ctx, uid, model.NotificationCategory(c.QueryParam("category")))
	case c.QueryParam("type") != "":
		list = h.Notifications.ByType(ctx, uid, model.NotificationType(c.QueryParam("type")))
	default:
		list = h.Notifications.Notifications(ctx, uid)
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": list})
}

// Add stores a notification, optionally deferred by delay_seconds.
func (h *NotificationHandler) Add(c echo.Context) error {
	var req addNotificationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Type == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type/category required"})
	}

	n := model.Notification{
		Type:      req.Type,
		Category:  req.Category,
		Priority:  req.Priority,
		Title:     req.Title,
		Message:   req.Message,
		Data:      req.Data,
		CTA:       req.CTA,
		ExpiresAt: req.ExpiresAt,
	}
	if req.DelaySeconds > 0 {
		h.Notifications.Schedule(userID(c), n, time.Duration(req.DelaySeconds)*time.Second)
		return c.JSON(http.StatusAccepted, echo.Map{"scheduled_in_seconds": req.DelaySeconds})
	}
	return c.JSON(http.StatusCreated, h.Notifications.Add(c.Request().Context(), userID(c), n))
}

// SendPersonalized renders a template and adds the result.
func (h *NotificationHandler) SendPersonalized(c echo.Context) error {
	var req personalizedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	n, err := h.Notifications.SendPersonalized(c.Request().Context(), userID(c), req.TemplateID, req.Variables)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.Notifications.MarkRead(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead flags every notification as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	h.Notifications.MarkAllRead(c.Request().Context(), userID(c))
	return c.NoContent(http.StatusNoContent)
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := h.Notifications.Delete(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Sweep drops expired notifications and reports how many went.
func (h *NotificationHandler) Sweep(c echo.Context) error {
	removed := h.Notifications.SweepExpired(c.Request().Context(), userID(c))
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

// Insights returns the measured engagement numbers.
func (h *NotificationHandler) Insights(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Notifications.Insights(c.Request().Context(), userID(c)))
}

// GetPreferences returns the channel preference matrix.
func (h *NotificationHandler) GetPreferences(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Notifications.Preferences(c.Request().Context(), userID(c)))
}

// PatchPreferences merges a partial update into the quiet hours and
// interest tags.
func (h *NotificationHandler) PatchPreferences(c echo.Context) error {
	var patch service.PreferencesPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	prefs, err := h.Notifications.UpdatePreferences(c.Request().Context(), userID(c), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// PatchChannel merges a partial update into one channel's preference.
func (h *NotificationHandler) PatchChannel(c echo.Context) error {
	var patch service.ChannelPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	prefs, err := h.Notifications.UpdateChannel(c.Request().Context(), userID(c), model.Channel(c.Param("channel")), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, prefs)
}
