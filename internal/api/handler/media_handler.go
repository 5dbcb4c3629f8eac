package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// MediaHandler serves media moderation.
type MediaHandler struct {
	service ports.MediaService
}

func NewMediaHandler(service ports.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// List handles GET /media.
//
// @Summary      List uploaded media
// @Tags         media
// @Produce      json
// @Security     CookieAuth
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Param        sender    query     string  false  "Filter by sender"
// @Param        reported  query     bool    false  "Only reported media"
// @Success      200       {object}  ports.MediaList
// @Failure      403       {object}  map[string]any
// @Router       /media [get]
func (h *MediaHandler) List(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), ports.MediaQuery{
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", 10),
		SenderID:     c.QueryParam("sender"),
		ReportedOnly: c.QueryParam("reported") == "true",
	}, admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": list})
}

// Delete handles DELETE /media/:id.
//
// @Summary      Soft-delete a media item
// @Tags         media
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Media ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /media/{id} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), admin, requestMeta(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "media deleted"})
}
