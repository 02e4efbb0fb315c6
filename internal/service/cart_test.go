package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/repository"
	"github.com/lusotown/community-platform/internal/storage"
)

func newCartService() *CartService {
	return NewCartService(repository.NewCartRepo(storage.NewMemoryStore()))
}

func intPtr(n int) *int { return &n }

func eventItem(title, date string, spotsLeft *int) model.CartItem {
	return model.CartItem{
		Category:   model.CategoryEvent,
		Title:      title,
		PriceCents: 2500,
		Event:      &model.EventDetails{Date: date, SpotsLeft: spotsLeft},
	}
}

func TestCartService_AddToCart_NewItem(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 2)

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "GBP", item.Currency)
	assert.Len(t, svc.Items(ctx, "u1"), 1)
}

func TestCartService_AddToCart_DefaultsQuantityToOne(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 0)

	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartService_AddToCart_DuplicateEventRejected(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 1)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 1)

	assert.ErrorIs(t, err, model.ErrDuplicateEventBooking)
	assert.Len(t, svc.Items(ctx, "u1"), 1)
}

func TestCartService_AddToCart_NonEventDuplicateIncrements(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	product := model.CartItem{Category: model.CategoryProduct, Title: "Pastel de Nata Box", PriceCents: 1200}
	_, err := svc.AddToCart(ctx, "u1", product, 1)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, "u1", product, 2)
	require.NoError(t, err)

	items := svc.Items(ctx, "u1")
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartService_AddToCart_SpotsLeftExceeded(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", intPtr(3)), 4)

	assert.ErrorIs(t, err, model.ErrNotEnoughSpots)
	assert.Empty(t, svc.Items(ctx, "u1"))
}

func TestCartService_UpdateQuantity_ZeroRemoves(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 2)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, "u1", item.ID, 0))
	assert.Empty(t, svc.Items(ctx, "u1"))
}

func TestCartService_UpdateQuantity_SpotsLeftRejected(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", intPtr(5)), 1)
	require.NoError(t, err)

	err = svc.UpdateQuantity(ctx, "u1", item.ID, 6)

	assert.ErrorIs(t, err, model.ErrNotEnoughSpots)
	items := svc.Items(ctx, "u1")
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartService_UpdateQuantity_MaxQuantityRejected(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	product := model.CartItem{Category: model.CategoryProduct, Title: "Tile Coasters", PriceCents: 800, MaxQuantity: intPtr(2)}
	item, err := svc.AddToCart(ctx, "u1", product, 1)
	require.NoError(t, err)

	err = svc.UpdateQuantity(ctx, "u1", item.ID, 3)

	assert.ErrorIs(t, err, model.ErrMaxQuantity)
	assert.Equal(t, 1, svc.Items(ctx, "u1")[0].Quantity)
}

func TestCartService_QuantityInvariant(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 3)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateQuantity(ctx, "u1", item.ID, -2))

	// dropping below 1 deletes rather than storing an invalid quantity
	for _, it := range svc.Items(ctx, "u1") {
		assert.GreaterOrEqual(t, it.Quantity, 1)
	}
	assert.Empty(t, svc.Items(ctx, "u1"))
}

func TestCartService_Totals(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 2) // 2 x 2500
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "u1", model.CartItem{Category: model.CategoryProduct, Title: "Pastel de Nata Box", PriceCents: 1200}, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, svc.Count(ctx, "u1"))
	assert.Equal(t, int64(6200), svc.Total(ctx, "u1"))

	require.NoError(t, svc.RemoveFromCart(ctx, "u1", svc.Items(ctx, "u1")[0].ID))
	assert.Equal(t, int64(1200), svc.Total(ctx, "u1"))
}

func TestCartService_ClearCart(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 1)
	require.NoError(t, err)

	svc.ClearCart(ctx, "u1")
	assert.Empty(t, svc.Items(ctx, "u1"))
	assert.Zero(t, svc.Total(ctx, "u1"))
}

func TestCartService_CreateReservation(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 2)
	require.NoError(t, err)

	res, err := svc.CreateReservation(ctx, "u1", item.ID, 2, ReservationDetails{Notes: "window table"})

	require.NoError(t, err)
	assert.Equal(t, model.ReservationPending, res.Status)
	assert.Equal(t, int64(5000), res.TotalCents)
	assert.Equal(t, "window table", res.Notes)

	// the source cart item is consumed by the conversion
	assert.Empty(t, svc.Items(ctx, "u1"))
	assert.Len(t, svc.Reservations(ctx, "u1"), 1)
}

func TestCartService_CreateReservation_QuantityTooHigh(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 1)
	require.NoError(t, err)

	_, err = svc.CreateReservation(ctx, "u1", item.ID, 2, ReservationDetails{})

	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
	assert.Len(t, svc.Items(ctx, "u1"), 1)
}

func TestCartService_CreateReservation_DuplicatePending(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, "u1", eventItem("Fado Night", "2024-06-24", nil), 2)
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, "u1", item.ID, 1, ReservationDetails{})
	require.NoError(t, err)

	// the item is gone from the cart, so a second conversion cannot find it
	_, err = svc.CreateReservation(ctx, "u1", item.ID, 1, ReservationDetails{})
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}
