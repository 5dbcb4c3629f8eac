package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// SetupHandler serves the unauthenticated first-run endpoints. They only do
// anything useful while no admin account exists; afterwards Init refuses.
type SetupHandler struct {
	service ports.AdminService
}

func NewSetupHandler(service ports.AdminService) *SetupHandler {
	return &SetupHandler{service: service}
}

type initSetupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type fixPermissionsRequest struct {
	Username string `json:"username" validate:"required"`
}

// Status handles GET /setup.
//
// @Summary      Report whether initial setup is done
// @Tags         setup
// @Produce      json
// @Success      200  {object}  ports.SetupStatus
// @Router       /setup [get]
func (h *SetupHandler) Status(c echo.Context) error {
	status, err := h.service.SetupStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": status})
}

// Init handles POST /setup — creates the first superadmin. Empty fields fall
// back to the documented defaults so a bare POST bootstraps a dev install.
//
// @Summary      Create the first superadmin
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body      initSetupRequest  false  "Optional credentials"
// @Success      201   {object}  domain.AdminProfile
// @Failure      400   {object}  map[string]any
// @Router       /setup [post]
func (h *SetupHandler) Init(c echo.Context) error {
	var req initSetupRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	profile, err := h.service.InitSetup(c.Request().Context(), ports.InitSetupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Meta:     requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": profile})
}

// FixPermissions handles POST /setup/fix-permissions — repairs an admin's
// permission matrix from their role defaults.
//
// @Summary      Repair an admin's permission matrix
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body      fixPermissionsRequest  true  "Target admin"
// @Success      200   {object}  domain.AdminProfile
// @Failure      404   {object}  map[string]any
// @Router       /setup/fix-permissions [post]
func (h *SetupHandler) FixPermissions(c echo.Context) error {
	var req fixPermissionsRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	profile, err := h.service.FixPermissions(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": profile})
}
