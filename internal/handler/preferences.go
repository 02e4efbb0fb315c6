package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/repository"
)

// PreferencesHandler exposes the display-language preference.
type PreferencesHandler struct {
	Prefs *repository.PreferenceRepo
}

func NewPreferencesHandler(prefs *repository.PreferenceRepo) *PreferencesHandler {
	return &PreferencesHandler{Prefs: prefs}
}

type languageReq struct {
	Language string `json:"language"`
}

// GetLanguage returns the user's display language.
func (h *PreferencesHandler) GetLanguage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"language": h.Prefs.Language(c.Request().Context(), userID(c)),
	})
}

// SetLanguage switches the display language between English and
// Portuguese.
func (h *PreferencesHandler) SetLanguage(c echo.Context) error {
	var req languageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Prefs.SetLanguage(c.Request().Context(), userID(c), req.Language); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"language": req.Language})
}
