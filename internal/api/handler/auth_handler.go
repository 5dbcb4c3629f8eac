package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/api/middleware"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// AuthHandler serves login, logout, profile and two-factor setup.
type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

type loginRequest struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	TwoFactorToken string `json:"twoFactorToken"`
	RememberMe     bool   `json:"rememberMe"`
}

type loginResponse struct {
	Success          bool                 `json:"success"`
	RequireTwoFactor bool                 `json:"requireTwoFactor,omitempty"`
	Message          string               `json:"message,omitempty"`
	Admin            *domain.AdminProfile `json:"admin,omitempty"`
}

// "verify" is the wire name for proving code possession; "enable" is kept
// as an alias.
type twoFactorRequest struct {
	Action string `json:"action" validate:"required,oneof=generate verify enable disable"`
	Token  string `json:"token"`
}

type twoFactorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Secret     string `json:"secret,omitempty"`
	OtpauthURL string `json:"otpauthUrl,omitempty"`
}

// Login authenticates an admin and sets the session cookie.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Username:       req.Username,
		Password:       req.Password,
		TwoFactorToken: req.TwoFactorToken,
		RememberMe:     req.RememberMe,
		Meta:           requestMeta(c),
	})
	if err != nil {
		return err
	}

	// The challenge is not a completed login: success stays false until a
	// valid code arrives.
	if result.RequireTwoFactor {
		return c.JSON(http.StatusOK, loginResponse{
			Success:          false,
			RequireTwoFactor: true,
			Message:          "two-factor code required",
		})
	}

	h.setSessionCookie(c, result.Token, result.MaxAge)
	admin := result.Admin
	return c.JSON(http.StatusOK, loginResponse{Success: true, Admin: &admin})
}

// Logout clears the session cookie. It succeeds with or without a valid
// session; the audit entry is only written when one was present.
//
// @Summary      Admin logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	admin, _ := adminFrom(c)

	h.authService.Logout(c.Request().Context(), admin, requestMeta(c))
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "logged out"})
}

// Profile returns the authenticated admin's own record.
//
// @Summary      Current admin profile
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  domain.AdminProfile
// @Failure      401  {object}  map[string]any
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "admin": admin.Profile()})
}

// TwoFactor drives the two-factor lifecycle: generate a pending secret,
// verify a code to enable it, or disable with a valid code.
//
// @Summary      Two-factor setup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      twoFactorRequest  true  "Action and optional code"
// @Success      200   {object}  twoFactorResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /auth/setup-2fa [post]
func (h *AuthHandler) TwoFactor(c echo.Context) error {
	admin, err := adminFrom(c)
	if err != nil {
		return err
	}

	var req twoFactorRequest
	if err := c.Bind(&req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ValidationError(err.Error())
	}

	ctx := c.Request().Context()
	meta := requestMeta(c)

	switch req.Action {
	case "generate":
		setup, err := h.authService.GenerateTwoFactor(ctx, admin, meta)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, twoFactorResponse{
			Success:    true,
			Secret:     setup.Secret,
			OtpauthURL: setup.ProvisioningURI,
		})
	case "verify", "enable":
		if err := h.authService.EnableTwoFactor(ctx, admin, req.Token, meta); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, twoFactorResponse{Success: true, Message: "two-factor enabled"})
	case "disable":
		if err := h.authService.DisableTwoFactor(ctx, admin, req.Token, meta); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, twoFactorResponse{Success: true, Message: "two-factor disabled"})
	default:
		return domain.ValidationError("unknown action")
	}
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
