package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// AdminHandler manages admin accounts.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type createAdminRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=superadmin moderator viewer"`
}

type updateAdminRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=superadmin moderator viewer"`
	IsActive *bool   `json:"isActive"`
}

// List handles GET /admins.
//
// @Summary      List admin accounts
// @Tags         admins
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   domain.AdminProfile
// @Failure      403  {object}  map[string]any
// @Router       /admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	admins, err := h.service.List(c.Request().Context(), admin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": admins})
}

// Create handles POST /admins.
//
// @Summary      Create an admin account
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createAdminRequest  true  "New admin"
// @Success      201   {object}  domain.AdminProfile
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /admins [post]
func (h *AdminHandler) Create(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	profile, err := h.service.Create(c.Request().Context(), ports.CreateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Actor:    admin,
		Meta:     requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": profile})
}

// Update handles PATCH /admins/:id — role changes and activation toggles.
//
// @Summary      Update an admin account
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string              true  "Admin ID"
// @Param        body  body      updateAdminRequest  true  "Changes"
// @Success      200   {object}  domain.AdminProfile
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /admins/{id} [patch]
func (h *AdminHandler) Update(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req updateAdminRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	in := ports.UpdateAdminInput{
		AdminID:  c.Param("id"),
		IsActive: req.IsActive,
		Actor:    admin,
		Meta:     requestMeta(c),
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	profile, err := h.service.Update(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": profile})
}
