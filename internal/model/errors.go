// Package model defines the domain entities of the community platform and
// the sentinel errors shared across services. Handlers use these sentinels
// to translate business-rule violations into HTTP responses; the owning
// store is always left unmutated when one is returned.
package model

import "errors"

var (
	// ErrItemNotFound is returned when a cart or saved item id does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateEventBooking is returned when an event with the same title
	// and date is already in the cart.
	ErrDuplicateEventBooking = errors.New("event already in cart")

	// ErrNotEnoughSpots is returned when a requested quantity exceeds the
	// event's remaining spots.
	ErrNotEnoughSpots = errors.New("not enough spots left")

	// ErrMaxQuantity is returned when a requested quantity exceeds the
	// item's maximum.
	ErrMaxQuantity = errors.New("maximum quantity exceeded")

	// ErrReservationExists is returned when a pending reservation already
	// exists for the cart item.
	ErrReservationExists = errors.New("reservation already pending for this item")

	// ErrInvalidQuantity is returned when a reservation asks for more than
	// the cart item holds.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

var (
	// ErrAlreadySaved is returned on a duplicate add of a saved item.
	ErrAlreadySaved = errors.New("already saved")
)

var (
	// ErrFeatureLimitReached is returned when a tier quota is exhausted.
	ErrFeatureLimitReached = errors.New("feature limit reached")

	// ErrUnknownFeature is returned for a feature name outside the quota table.
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrNoSubscription is returned when an operation needs an existing
	// subscription and none is on record.
	ErrNoSubscription = errors.New("no subscription on record")
)

var (
	// ErrNotificationNotFound is returned when a notification id is unknown.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrUnknownTemplate is returned for an unknown notification template id.
	ErrUnknownTemplate = errors.New("unknown notification template")

	// ErrUnknownChannel is returned for a channel outside the preference matrix.
	ErrUnknownChannel = errors.New("unknown notification channel")

	// ErrInvalidQuietHours is returned when a quiet hour bound is not an
	// "HH:MM" clock time.
	ErrInvalidQuietHours = errors.New("invalid quiet hours")
)

var (
	// ErrNoJourney is returned when steps are recorded before a journey was
	// initialized.
	ErrNoJourney = errors.New("journey not initialized")

	// ErrUnknownStep is returned for a step outside the journey step enum.
	ErrUnknownStep = errors.New("unknown journey step")

	// ErrUnknownTrigger is returned for a trigger outside the rule table.
	ErrUnknownTrigger = errors.New("unknown recommendation trigger")

	// ErrUnsupportedLanguage is returned for a language code other than
	// English or Portuguese.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
