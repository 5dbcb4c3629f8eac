package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// RoomHandler serves room moderation.
type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

type blockRoomRequest struct {
	Blocked bool `json:"blocked"`
}

// List handles GET /rooms.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Security     CookieAuth
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Param        type   query     string  false  "private | group | channel"
// @Success      200    {object}  ports.RoomList
// @Failure      403    {object}  map[string]any
// @Router       /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), ports.RoomQuery{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
		Type:  c.QueryParam("type"),
	}, admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": list})
}

// SetBlocked handles PATCH /rooms/:id.
//
// @Summary      Block or unblock a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string            true  "Room ID"
// @Param        body  body      blockRoomRequest  true  "Desired block state"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /rooms/{id} [patch]
func (h *RoomHandler) SetBlocked(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req blockRoomRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}

	room, err := h.service.SetBlocked(c.Request().Context(), c.Param("id"), req.Blocked, admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": room})
}
