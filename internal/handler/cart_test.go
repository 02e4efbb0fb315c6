package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusotown/community-platform/internal/handler"
	"github.com/lusotown/community-platform/internal/middleware"
	"github.com/lusotown/community-platform/internal/repository"
	"github.com/lusotown/community-platform/internal/router"
	"github.com/lusotown/community-platform/internal/service"
	"github.com/lusotown/community-platform/internal/storage"
)

// newTestServer wires the full HTTP surface over in-memory storage.
func newTestServer() *echo.Echo {
	store := storage.NewMemoryStore()
	prefRepo := repository.NewPreferenceRepo(store)
	cartSvc := service.NewCartService(repository.NewCartRepo(store))
	favSvc := service.NewFavoritesService(repository.NewSavedRepo(store))
	networkSvc := service.NewNetworkingService(repository.NewNetworkRepo(store))
	subsSvc := service.NewSubscriptionService(repository.NewSubscriptionRepo(store), nil, nil)
	notifSvc := service.NewNotificationService(repository.NewNotificationRepo(store), prefRepo, nil)
	integrationSvc := service.NewIntegrationService(repository.NewIntegrationRepo(store), cartSvc, networkSvc, subsSvc)

	e := echo.New()
	router.RegisterRoutes(e)
	api := e.Group("/v1", middleware.Identity())
	router.RegisterAPI(api, router.Handlers{
		Cart:          handler.NewCartHandler(cartSvc),
		Saved:         handler.NewSavedHandler(favSvc),
		Networking:    handler.NewNetworkingHandler(networkSvc),
		Subscription:  handler.NewSubscriptionHandler(subsSvc),
		Notifications: handler.NewNotificationHandler(notifSvc),
		Integration:   handler.NewIntegrationHandler(integrationSvc),
		Preferences:   handler.NewPreferencesHandler(prefRepo),
	})
	return e
}

func doJSON(e *echo.Echo, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != "" {
		req.Header.Set(middleware.UserHeader, user)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCartEndpoints(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/cart/items", "u1",
		`{"category":"event","title":"Fado Night","price_cents":2500,"quantity":2,"event":{"date":"2024-06-24"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var item struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 2, item.Quantity)

	rec = doJSON(e, http.MethodGet, "/v1/cart", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cart struct {
		Count      int   `json:"count"`
		TotalCents int64 `json:"total_cents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, int64(5000), cart.TotalCents)

	// same event again is a conflict
	rec = doJSON(e, http.MethodPost, "/v1/cart/items", "u1",
		`{"category":"event","title":"Fado Night","price_cents":2500,"quantity":1,"event":{"date":"2024-06-24"}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// another user's cart is empty
	rec = doJSON(e, http.MethodGet, "/v1/cart", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Zero(t, cart.Count)

	// reservation conversion consumes the cart item
	rec = doJSON(e, http.MethodPost, "/v1/cart/items/"+item.ID+"/reservation", "u1",
		`{"quantity":2,"notes":"window table"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/cart", "u1", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Zero(t, cart.Count)

	rec = doJSON(e, http.MethodDelete, "/v1/cart/items/"+item.ID, "u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartEndpoints_GuestFallback(t *testing.T) {
	e := newTestServer()

	// no user header resolves to the shared guest identity
	rec := doJSON(e, http.MethodPost, "/v1/cart/items", "",
		`{"category":"product","title":"Pastel de Nata Box","price_cents":1200,"quantity":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/cart", "guest", "")
	var cart struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 1, cart.Count)
}

func TestSavedEndpoints(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/saved/toggle", "u1",
		`{"category":"event","title":"Fado Night"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"saved":true}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/v1/saved/contains?title=Fado+Night&category=event", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"saved":true}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/v1/saved", "u1", `{"category":"event","title":"Fado Night"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/notifications", "u1",
		`{"type":"system","category":"general","title":{"en":"Welcome","pt":"Bem-vindo"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/notifications/personalized", "u1",
		`{"template_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/notifications/read-all", "u1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/notifications?unread=true", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notifications":null}`, rec.Body.String())
}

func TestJourneyEndpoints(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodGet, "/v1/journey", "u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/journey", "u1", `{"start":"transport"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var journey struct {
		Direction string `json:"direction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &journey))
	assert.Equal(t, "service_to_community", journey.Direction)

	rec = doJSON(e, http.MethodPost, "/v1/journey", "u1", `{"start":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/journey/steps", "u1", `{"step":"event_attended"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLanguageEndpoints(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodGet, "/v1/preferences/language", "u1", "")
	assert.JSONEq(t, `{"language":"en"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPut, "/v1/preferences/language", "u1", `{"language":"pt"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPut, "/v1/preferences/language", "u1", `{"language":"fr"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/preferences/language", "u1", "")
	assert.JSONEq(t, `{"language":"pt"}`, rec.Body.String())
}
