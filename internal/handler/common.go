// Package handler contains the HTTP layer: thin echo handlers that bind
// request DTOs, call into the services and translate sentinel errors to
// status codes.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/payment"
)

// userID reads the identity the middleware stored in the context.
func userID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}

// fail maps a service error onto an HTTP response. Business-rule sentinels
// get their proper 4xx; collaborator failures surface as 502; anything
// unrecognized is a 500.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrItemNotFound),
		errors.Is(err, model.ErrNotificationNotFound),
		errors.Is(err, model.ErrNoJourney),
		errors.Is(err, model.ErrNoSubscription):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrDuplicateEventBooking),
		errors.Is(err, model.ErrReservationExists),
		errors.Is(err, model.ErrAlreadySaved):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrNotEnoughSpots),
		errors.Is(err, model.ErrMaxQuantity),
		errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrFeatureLimitReached),
		errors.Is(err, model.ErrUnknownFeature),
		errors.Is(err, model.ErrUnknownTemplate),
		errors.Is(err, model.ErrUnknownChannel),
		errors.Is(err, model.ErrInvalidQuietHours),
		errors.Is(err, model.ErrUnknownStep),
		errors.Is(err, model.ErrUnknownTrigger),
		errors.Is(err, model.ErrUnsupportedLanguage):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, payment.ErrProvider),
		errors.Is(err, payment.ErrVerification):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream provider unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
