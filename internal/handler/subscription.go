package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/service"
)

// SubscriptionHandler exposes the membership and quota endpoints.
type SubscriptionHandler struct {
	Subs *service.SubscriptionService
}

func NewSubscriptionHandler(subs *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Subs: subs}
}

type checkoutReq struct {
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Tier  model.Tier `json:"tier"`
	Plan  model.Plan `json:"plan"`
}

type upgradeReq struct {
	Tier model.Tier `json:"tier"`
}

type verifyStudentReq struct {
	Email      string `json:"email"`
	University string `json:"university"`
}

// Get returns the subscription record plus the derived tier, discount and
// usage counters.
func (h *SubscriptionHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)
	return c.JSON(http.StatusOK, echo.Map{
		"subscription":     h.Subs.Subscription(ctx, uid),
		"tier":             h.Subs.Tier(ctx, uid),
		"active":           h.Subs.HasActive(ctx, uid),
		"discount_percent": h.Subs.ServiceDiscount(ctx, uid),
		"usage":            h.Subs.Usage(ctx, uid),
	})
}

// Checkout starts a hosted checkout session for the requested tier.
func (h *SubscriptionHandler) Checkout(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Tier == "" || req.Plan == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/tier/plan required"})
	}
	sessionID, err := h.Subs.CreateSubscription(c.Request().Context(), userID(c), req.Email, req.Name, req.Tier, req.Plan)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"session_id": sessionID})
}

// Cancel cancels the subscription with the provider.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	if err := h.Subs.CancelSubscription(c.Request().Context(), userID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Upgrade moves the subscription to a new tier.
func (h *SubscriptionHandler) Upgrade(c echo.Context) error {
	var req upgradeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Tier == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tier required"})
	}
	if err := h.Subs.UpgradeSubscription(c.Request().Context(), userID(c), req.Tier); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Allowance reports whether one more use of the feature is within quota.
func (h *SubscriptionHandler) Allowance(c echo.Context) error {
	feature := model.Feature(c.Param("feature"))
	allowed, err := h.Subs.CanUseFeature(c.Request().Context(), userID(c), feature)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"feature": feature, "allowed": allowed})
}

// TrackUsage consumes one unit of the feature's quota. An exhausted quota
// is a 429 so clients can distinguish it from a bad request.
func (h *SubscriptionHandler) TrackUsage(c echo.Context) error {
	feature := model.Feature(c.Param("feature"))
	ctx := c.Request().Context()
	uid := userID(c)
	ok, err := h.Subs.TrackFeatureUsage(ctx, uid, feature)
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return c.JSON(http.StatusTooManyRequests, echo.Map{
			"error":   model.ErrFeatureLimitReached.Error(),
			"feature": feature,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"feature": feature, "usage": h.Subs.Usage(ctx, uid)})
}

// VerifyStudent runs the student email verification.
func (h *SubscriptionHandler) VerifyStudent(c echo.Context) error {
	var req verifyStudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.University == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/university required"})
	}
	valid, err := h.Subs.VerifyStudent(c.Request().Context(), userID(c), req.Email, req.University)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": valid})
}
