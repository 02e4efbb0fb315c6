package model

import "time"

// ItemCategory classifies a cart or saved item.
type ItemCategory string

const (
	CategoryEvent     ItemCategory = "event"
	CategoryService   ItemCategory = "service"
	CategoryProduct   ItemCategory = "product"
	CategoryTransport ItemCategory = "transport"
	CategoryBusiness  ItemCategory = "business"
	CategoryPost      ItemCategory = "post"
	CategoryGroup     ItemCategory = "group"
)

// EventDetails carries the optional event metadata attached to an item.
// SpotsLeft is nil when the event does not publish remaining capacity; a
// non-nil value caps the quantity that can be booked.
type EventDetails struct {
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Location  string `json:"location,omitempty"`
	SpotsLeft *int   `json:"spots_left,omitempty"`
}

// CartItem is a single line in a member's cart.
//
// Invariants maintained by the cart service:
//   - Quantity >= 1 for every stored item; a mutation that would drop it
//     below 1 removes the item instead.
//   - Quantity never exceeds MaxQuantity or, for events, Event.SpotsLeft
//     when those are present.
type CartItem struct {
	ID          string        `json:"id"`
	Category    ItemCategory  `json:"category"`
	Title       string        `json:"title"`
	PriceCents  int64         `json:"price_cents"` // unit price in pence
	Currency    string        `json:"currency"`
	Quantity    int           `json:"quantity"`
	MaxQuantity *int          `json:"max_quantity,omitempty"`
	Event       *EventDetails `json:"event,omitempty"`
	AddedAt     time.Time     `json:"added_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsEvent reports whether the item books an event.
func (i CartItem) IsEvent() bool { return i.Category == CategoryEvent }

// LineTotalCents is the price of the line: unit price times quantity.
func (i CartItem) LineTotalCents() int64 { return i.PriceCents * int64(i.Quantity) }

// ReservationStatus enumerates the states of a reservation.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

// Reservation records the conversion of a cart item into a booking request.
// At most one pending reservation may exist per originating cart item; on
// creation the source cart item is removed from the cart.
type Reservation struct {
	ID               string    `json:"id"`
	CartItemID       string    `json:"cart_item_id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	Quantity         int       `json:"quantity"`
	Status           string    `json:"status"`
	TotalCents       int64     `json:"total_cents"`
	Currency         string    `json:"currency"`
	Notes            string    `json:"notes,omitempty"`
	Dietary          string    `json:"dietary,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
