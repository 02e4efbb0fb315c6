package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/service"
)

// IntegrationHandler exposes the journey, analytics and recommendation
// endpoints.
type IntegrationHandler struct {
	Integration *service.IntegrationService
}

func NewIntegrationHandler(i *service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{Integration: i}
}

type startJourneyReq struct {
	Start model.JourneyStart `json:"start"`
}

type recordStepReq struct {
	Step model.JourneyStep `json:"step"`
}

type revenueReq struct {
	AmountCents int64 `json:"amount_cents"`
}

// StartJourney initializes (or restarts) the user journey from a surface.
func (h *IntegrationHandler) StartJourney(c echo.Context) error {
	var req startJourneyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	switch req.Start {
	case model.StartTransport, model.StartServices, model.StartEvents, model.StartCommunity:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown journey start"})
	}
	return c.JSON(http.StatusCreated, h.Integration.InitializeJourney(c.Request().Context(), userID(c), req.Start))
}

// GetJourney returns the stored journey.
func (h *IntegrationHandler) GetJourney(c echo.Context) error {
	j := h.Integration.Journey(c.Request().Context(), userID(c))
	if j == nil {
		return fail(c, model.ErrNoJourney)
	}
	return c.JSON(http.StatusOK, j)
}

// RecordStep appends a journey step.
func (h *IntegrationHandler) RecordStep(c echo.Context) error {
	var req recordStepReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	j, err := h.Integration.RecordStep(c.Request().Context(), userID(c), req.Step)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, j)
}

// Recommendations returns the ranked set, or a single trigger's result
// when ?trigger= is given.
func (h *IntegrationHandler) Recommendations(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)
	if trigger := c.QueryParam("trigger"); trigger != "" {
		recs, err := h.Integration.Recommendations(ctx, uid, model.RecommendationTrigger(trigger))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"recommendations": recs})
	}
	return c.JSON(http.StatusOK, echo.Map{"recommendations": h.Integration.Refresh(ctx, uid)})
}

// Analytics returns the counters and the derived ecosystem value.
func (h *IntegrationHandler) Analytics(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)
	return c.JSON(http.StatusOK, echo.Map{
		"analytics":       h.Integration.Analytics(ctx, uid),
		"ecosystem_value": h.Integration.EcosystemValue(ctx, uid),
	})
}

// RecordRevenue adds a completed purchase to the analytics counters.
func (h *IntegrationHandler) RecordRevenue(c echo.Context) error {
	var req revenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
	}
	h.Integration.RecordRevenue(c.Request().Context(), userID(c), req.AmountCents)
	return c.NoContent(http.StatusNoContent)
}

// UserInsights returns the bilingual insight strings for the user.
func (h *IntegrationHandler) UserInsights(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"insights": h.Integration.UserInsights(c.Request().Context(), userID(c)),
	})
}
