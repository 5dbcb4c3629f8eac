package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// UserHandler serves the user moderation views.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type moderateUserRequest struct {
	UserID  string `json:"userId"`
	Action  string `json:"action" validate:"required,oneof=update block unblock warn"`
	Reason  string `json:"reason"`
	Updates struct {
		Name      *string `json:"name"`
		LastName  *string `json:"lastName"`
		Username  *string `json:"username"`
		Biography *string `json:"biography"`
		Avatar    *string `json:"avatar"`
	} `json:"updates"`
}

type deleteUserRequest struct {
	Reason         string `json:"reason" validate:"required"`
	DeleteMessages bool   `json:"deleteMessages"`
	DeleteMedia    bool   `json:"deleteMedia"`
}

// List handles GET /users.
//
// @Summary      List chat users
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size"
// @Param        search     query     string  false  "Match name, username or phone"
// @Param        status     query     string  false  "all | online | offline | blocked | active"
// @Param        sortBy     query     string  false  "Sort field"
// @Param        sortOrder  query     string  false  "asc | desc"
// @Success      200        {object}  ports.UserList
// @Failure      401        {object}  map[string]any
// @Failure      403        {object}  map[string]any
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), ports.UserQuery{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
		Search:    c.QueryParam("search"),
		Status:    c.QueryParam("status"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}, admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": list})
}

// Get handles GET /users/:id.
//
// @Summary      Get one user with moderation detail
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  ports.UserDetail
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), c.Param("id"), admin, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": detail})
}

// Moderate handles profile edits, block, unblock and warn. It serves both
// PATCH /users (userId in the body) and PATCH /users/:id; the path parameter
// wins when both are present.
//
// @Summary      Moderate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      moderateUserRequest  true  "Target user, action and payload"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /users [patch]
func (h *UserHandler) Moderate(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req moderateUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	userID := c.Param("id")
	if userID == "" {
		userID = req.UserID
	}
	if userID == "" {
		return domain.ValidationError("userId is required")
	}

	user, err := h.service.Moderate(c.Request().Context(), ports.ModerateUserInput{
		UserID: userID,
		Action: req.Action,
		Reason: req.Reason,
		Patch: ports.UserPatch{
			Name:      req.Updates.Name,
			LastName:  req.Updates.LastName,
			Username:  req.Updates.Username,
			Biography: req.Updates.Biography,
			Avatar:    req.Updates.Avatar,
		},
		Actor: admin,
		Meta:  requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": user})
}

// Delete handles DELETE /users/:id — block plus transactional cascade.
//
// @Summary      Delete (block and cascade) a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      deleteUserRequest  true  "Deletion reason and cascade flags"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	err = h.service.Delete(c.Request().Context(), ports.DeleteUserInput{
		UserID:         c.Param("id"),
		Reason:         req.Reason,
		DeleteMessages: req.DeleteMessages,
		DeleteMedia:    req.DeleteMedia,
		Actor:          admin,
		Meta:           requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "user deleted"})
}
