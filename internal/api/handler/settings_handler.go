package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// SettingsHandler serves the system settings view.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type updateSettingRequest struct {
	Value       any    `json:"value"`
	Category    string `json:"category" validate:"omitempty,oneof=general security notifications features limits appearance backup"`
	Description string `json:"description"`
}

// List handles GET /system/settings.
//
// @Summary      List system settings
// @Tags         system
// @Produce      json
// @Security     CookieAuth
// @Param        category  query     string  false  "Filter by category"
// @Success      200       {object}  map[string]any
// @Failure      403       {object}  map[string]any
// @Router       /system/settings [get]
func (h *SettingsHandler) List(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	settings, err := h.service.List(c.Request().Context(), c.QueryParam("category"), admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": settings})
}

// Update handles PUT /system/settings/:key.
//
// @Summary      Create or update a system setting
// @Tags         system
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        key   path      string                true  "Setting key"
// @Param        body  body      updateSettingRequest  true  "New value"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /system/settings/{key} [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req updateSettingRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	setting, err := h.service.Update(c.Request().Context(), ports.UpdateSettingInput{
		Key:         c.Param("key"),
		Value:       req.Value,
		Category:    domain.SettingCategory(req.Category),
		Description: req.Description,
		Actor:       admin,
		Meta:        requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": setting})
}
