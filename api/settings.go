package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"turbochat/domain"
)

// GetSettings returns the persisted user settings with defaults applied.
// GET /v1/settings
func (h *Handler) GetSettings(c echo.Context) error {
	settings, err := h.svc.GetSettings()
	if err != nil {
		log.Printf("ERROR: failed to get settings: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the persisted user settings.
// PUT /v1/settings
func (h *Handler) UpdateSettings(c echo.Context) error {
	var settings domain.Settings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.svc.UpdateSettings(settings); err != nil {
		log.Printf("ERROR: failed to update settings: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update settings"})
	}
	settings.ApplyDefaults()
	return c.JSON(http.StatusOK, settings)
}
