package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// AuditHandler serves the read side of the audit trail.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /audit-logs.
//
// @Summary      List audit trail entries
// @Tags         audit
// @Produce      json
// @Security     CookieAuth
// @Param        page     query     int     false  "Page number"
// @Param        limit    query     int     false  "Page size"
// @Param        adminId  query     string  false  "Filter by acting admin"
// @Param        action   query     string  false  "Filter by action kind"
// @Success      200      {object}  ports.AuditList
// @Failure      403      {object}  map[string]any
// @Router       /audit-logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	if _, err := adminFrom(c); err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), ports.AuditQuery{
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 10),
		ActorID: c.QueryParam("adminId"),
		Action:  domain.AuditAction(c.QueryParam("action")),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": list})
}
