package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/service"
)

// SavedHandler exposes the favorites endpoints.
type SavedHandler struct {
	Favorites *service.FavoritesService
}

func NewSavedHandler(fav *service.FavoritesService) *SavedHandler {
	return &SavedHandler{Favorites: fav}
}

type savedItemReq struct {
	Category    model.ItemCategory  `json:"category"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	Event       *model.EventDetails `json:"event,omitempty"`
}

func (r savedItemReq) toModel() model.SavedItem {
	return model.SavedItem{
		Category:    r.Category,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Event:       r.Event,
	}
}

// List returns the saved items.
func (h *SavedHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items": h.Favorites.Saved(c.Request().Context(), userID(c)),
	})
}

// Add saves an item; duplicates are a conflict.
func (h *SavedHandler) Add(c echo.Context) error {
	var req savedItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category/title required"})
	}
	item, err := h.Favorites.AddToSaved(c.Request().Context(), userID(c), req.toModel())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Toggle saves or removes depending on current membership.
func (h *SavedHandler) Toggle(c echo.Context) error {
	var req savedItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category/title required"})
	}
	saved, err := h.Favorites.ToggleSaved(c.Request().Context(), userID(c), req.toModel())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// Remove deletes a saved item by id.
func (h *SavedHandler) Remove(c echo.Context) error {
	if err := h.Favorites.RemoveFromSaved(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Contains reports membership, by (category, title) when a category is
// given and by title alone otherwise.
func (h *SavedHandler) Contains(c echo.Context) error {
	title := c.QueryParam("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	ctx := c.Request().Context()
	uid := userID(c)
	var saved bool
	if cat := c.QueryParam("category"); cat != "" {
		saved = h.Favorites.IsSavedItem(ctx, uid, model.ItemCategory(cat), title)
	} else {
		saved = h.Favorites.IsSaved(ctx, uid, title)
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}
