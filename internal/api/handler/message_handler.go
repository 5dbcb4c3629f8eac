package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// MessageHandler serves message moderation.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /messages.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Security     CookieAuth
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        roomId  query     string  false  "Filter by room"
// @Param        sender  query     string  false  "Filter by sender"
// @Success      200     {object}  ports.MessageList
// @Failure      403     {object}  map[string]any
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), ports.MessageQuery{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
		RoomID:   c.QueryParam("roomId"),
		SenderID: c.QueryParam("sender"),
	}, admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": list})
}

// Delete handles DELETE /messages/:id — a soft delete that keeps the record.
//
// @Summary      Soft-delete a message
// @Tags         messages
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), admin, requestMeta(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "message deleted"})
}
