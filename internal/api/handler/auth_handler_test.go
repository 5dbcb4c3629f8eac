package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/api/middleware"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

type stubAuthService struct {
	loginResult *ports.LoginResult
	loginErr    error
	lastLogin   ports.LoginInput
	loggedOut   bool
	logoutActor *domain.Admin
	enableCalls int
}

func (s *stubAuthService) Login(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	s.lastLogin = in
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Logout(_ context.Context, actor *domain.Admin, _ ports.RequestMeta) {
	s.loggedOut = true
	s.logoutActor = actor
}

func (s *stubAuthService) GenerateTwoFactor(context.Context, *domain.Admin, ports.RequestMeta) (*ports.TwoFactorSetup, error) {
	return &ports.TwoFactorSetup{Secret: "SECRET", ProvisioningURI: "otpauth://totp/demo"}, nil
}

func (s *stubAuthService) EnableTwoFactor(context.Context, *domain.Admin, string, ports.RequestMeta) error {
	s.enableCalls++
	return nil
}

func (s *stubAuthService) DisableTwoFactor(context.Context, *domain.Admin, string, ports.RequestMeta) error {
	return nil
}

func loginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		Token:  "jwt-token",
		MaxAge: 24 * time.Hour,
		Admin:  domain.AdminProfile{ID: "admin_1", Username: "alice", Role: domain.RoleSuperAdmin},
	}}
	h := NewAuthHandler(svc, false)

	c, rec := loginContext(t, `{"username":"alice","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	cookie := sessionCookie(t, rec)
	if cookie.Value != "jwt-token" {
		t.Fatalf("unexpected cookie value %q", cookie.Value)
	}
	if cookie.MaxAge != 86400 {
		t.Fatalf("expected 24h cookie, got max-age %d", cookie.MaxAge)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
	if cookie.Path != "/" {
		t.Fatalf("unexpected cookie path %q", cookie.Path)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Admin == nil || resp.Admin.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLogin_RememberMeExtendsCookie(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		Token:  "jwt-token",
		MaxAge: 720 * time.Hour,
		Admin:  domain.AdminProfile{ID: "admin_1", Username: "alice"},
	}}
	h := NewAuthHandler(svc, false)

	c, rec := loginContext(t, `{"username":"alice","password":"s3cret","rememberMe":true}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !svc.lastLogin.RememberMe {
		t.Fatalf("rememberMe not forwarded to the service")
	}
	if got := sessionCookie(t, rec).MaxAge; got != 2592000 {
		t.Fatalf("expected 30-day cookie, got max-age %d", got)
	}
}

func TestLogin_TwoFactorChallengeSetsNoCookie(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{RequireTwoFactor: true}}
	h := NewAuthHandler(svc, false)

	c, rec := loginContext(t, `{"username":"alice","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			t.Fatalf("no session cookie may be set before the code is verified")
		}
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatalf("challenge must not report a completed login: %+v", resp)
	}
	if !resp.RequireTwoFactor {
		t.Fatalf("requireTwoFactor flag missing: %+v", resp)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := loginContext(t, `{"username":"alice"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_ServiceErrorPassesThrough(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, false)

	c, _ := loginContext(t, `{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout_ClearsSessionCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.AdminContextKey, &domain.Admin{ID: "admin_1", Username: "alice"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !svc.loggedOut {
		t.Fatalf("logout not recorded")
	}
	if svc.logoutActor == nil || svc.logoutActor.ID != "admin_1" {
		t.Fatalf("actor not forwarded: %+v", svc.logoutActor)
	}
	if got := sessionCookie(t, rec).MaxAge; got != -1 {
		t.Fatalf("expected expired cookie, got max-age %d", got)
	}
}

func TestLogout_WithoutSessionStillSucceeds(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout without a session must succeed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.logoutActor != nil {
		t.Fatalf("no actor should be forwarded without a session")
	}
	if got := sessionCookie(t, rec).MaxAge; got != -1 {
		t.Fatalf("cookie must still be cleared, got max-age %d", got)
	}
}

func TestTwoFactor_VerifyEnables(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/setup-2fa", strings.NewReader(`{"action":"verify","token":"123456"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.AdminContextKey, &domain.Admin{ID: "admin_1", Username: "alice"})

	if err := h.TwoFactor(c); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if svc.enableCalls != 1 {
		t.Fatalf("verify must enable two-factor, got %d calls", svc.enableCalls)
	}
}

func TestTwoFactor_Generate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/auth/setup-2fa", strings.NewReader(`{"action":"generate"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.AdminContextKey, &domain.Admin{ID: "admin_1", Username: "alice"})

	if err := h.TwoFactor(c); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var resp twoFactorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Secret != "SECRET" || resp.OtpauthURL == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
