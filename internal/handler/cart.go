package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/service"
)

// CartHandler exposes the cart and reservation endpoints.
type CartHandler struct {
	Cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{Cart: cart}
}

// ----- DTOs -----

type addToCartReq struct {
	Category    model.ItemCategory  `json:"category"`
	Title       string              `json:"title"`
	PriceCents  int64               `json:"price_cents"`
	Currency    string              `json:"currency"`
	Quantity    int                 `json:"quantity"`
	MaxQuantity *int                `json:"max_quantity,omitempty"`
	Event       *model.EventDetails `json:"event,omitempty"`
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

type reservationReq struct {
	Quantity         int    `json:"quantity"`
	Notes            string `json:"notes"`
	Dietary          string `json:"dietary"`
	EmergencyContact string `json:"emergency_contact"`
}

type cartResp struct {
	Items      []model.CartItem `json:"items"`
	Count      int              `json:"count"`
	TotalCents int64            `json:"total_cents"`
}

// GetCart returns the cart with its derived count and total.
func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)
	return c.JSON(http.StatusOK, cartResp{
		Items:      h.Cart.Items(ctx, uid),
		Count:      h.Cart.Count(ctx, uid),
		TotalCents: h.Cart.Total(ctx, uid),
	})
}

// AddItem adds an item to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addToCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category/title required"})
	}

	item, err := h.Cart.AddToCart(c.Request().Context(), userID(c), model.CartItem{
		Category:    req.Category,
		Title:       req.Title,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		MaxQuantity: req.MaxQuantity,
		Event:       req.Event,
	}, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem sets an item's quantity; zero removes it.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateQuantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Cart.UpdateQuantity(c.Request().Context(), userID(c), c.Param("id"), req.Quantity); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveItem deletes one cart item.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.Cart.RemoveFromCart(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	h.Cart.ClearCart(c.Request().Context(), userID(c))
	return c.NoContent(http.StatusNoContent)
}

// CreateReservation converts a cart item into a pending reservation.
func (h *CartHandler) CreateReservation(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Cart.CreateReservation(c.Request().Context(), userID(c), c.Param("id"), req.Quantity, service.ReservationDetails{
		Notes:            req.Notes,
		Dietary:          req.Dietary,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// ListReservations returns the user's reservations.
func (h *CartHandler) ListReservations(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"reservations": h.Cart.Reservations(c.Request().Context(), userID(c)),
	})
}
