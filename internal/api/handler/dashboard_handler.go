package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// DashboardHandler serves the aggregate statistics view.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /dashboard/stats.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": stats})
}
