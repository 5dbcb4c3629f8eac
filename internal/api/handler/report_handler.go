package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// ReportHandler serves the report review queue.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type resolveReportRequest struct {
	Action string `json:"action" validate:"required,oneof=resolve dismiss"`
	Note   string `json:"note"`
}

// List handles GET /reports.
//
// @Summary      List user reports
// @Tags         reports
// @Produce      json
// @Security     CookieAuth
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Param        status      query     string  false  "all | pending | reviewed | resolved | dismissed"
// @Param        targetType  query     string  false  "user | message | room | media"
// @Success      200         {object}  ports.ReportList
// @Failure      403         {object}  map[string]any
// @Router       /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), ports.ReportQuery{
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 10),
		Status:     c.QueryParam("status"),
		TargetType: c.QueryParam("targetType"),
	}, admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": list})
}

// Resolve handles PATCH /reports/:id.
//
// @Summary      Resolve or dismiss a report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string                true  "Report ID"
// @Param        body  body      resolveReportRequest  true  "Resolution"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /reports/{id} [patch]
func (h *ReportHandler) Resolve(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req resolveReportRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	report, err := h.service.Resolve(c.Request().Context(), ports.ResolveReportInput{
		ReportID: c.Param("id"),
		Action:   req.Action,
		Note:     req.Note,
		Actor:    admin,
		Meta:     requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": report})
}
